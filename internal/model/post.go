package model

import (
	"html/template"
	"time"
)

// PostMeta 博客文章 front matter
type PostMeta struct {
	Title       string   `yaml:"title" validate:"required"`
	Date        string   `yaml:"date" validate:"required"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Cover       string   `yaml:"cover"`
	Draft       bool     `yaml:"draft"`
}

// Heading 文章目录项
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// Post 博客文章（加载时渲染完成，之后只读）
type Post struct {
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Date           Date          `json:"date"`
	Description    string        `json:"description"`
	Tags           []string      `json:"tags"`
	Cover          string        `json:"cover,omitempty"`
	Draft          bool          `json:"draft,omitempty"`
	HTML           template.HTML `json:"-"`
	PlainText      string        `json:"-"`
	Excerpt        string        `json:"excerpt"`
	TOC            []Heading     `json:"toc"`
	ReadingMinutes int           `json:"reading_minutes"`
}

// URL 文章地址
func (p *Post) URL() string {
	return "/blog/" + p.Slug
}

// HasTag 是否包含标签（大小写不敏感由调用方决定）
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Summary 列表摘要：优先 description
func (p *Post) Summary() string {
	if p.Description != "" {
		return p.Description
	}
	return p.Excerpt
}

// Profile 关于页信息（about.yaml）
type Profile struct {
	Name     string       `yaml:"name" json:"name" validate:"required"`
	Headline string       `yaml:"headline" json:"headline"`
	Avatar   string       `yaml:"avatar" json:"avatar"`
	Location string       `yaml:"location" json:"location"`
	Email    string       `yaml:"email" json:"email" validate:"omitempty,email"`
	Bio      []string     `yaml:"bio" json:"bio"`
	Career   []CareerItem `yaml:"career" json:"career" validate:"dive"`
	Skills   []string     `yaml:"skills" json:"skills"`
	Links    []SocialLink `yaml:"links" json:"links" validate:"dive"`
}

// CareerItem 工作经历
type CareerItem struct {
	Company    string   `yaml:"company" json:"company" validate:"required"`
	Role       string   `yaml:"role" json:"role" validate:"required"`
	Start      string   `yaml:"start" json:"start"`
	End        string   `yaml:"end" json:"end"`
	Highlights []string `yaml:"highlights" json:"highlights"`
}

// Period 展示用时间段
func (c CareerItem) Period() string {
	end := c.End
	if end == "" {
		end = "Present"
	}
	if c.Start == "" {
		return end
	}
	return c.Start + " – " + end
}

// SocialLink 社交链接
type SocialLink struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	URL  string `yaml:"url" json:"url" validate:"required,url"`
}

// PublishedAt 发布时间
func (p *Post) PublishedAt() time.Time {
	return p.Date.Time
}
