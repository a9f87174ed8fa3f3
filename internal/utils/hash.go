package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashIP 匿名化客户端 IP，取 sha256 前 8 字节
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}
