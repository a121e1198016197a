package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// GenUUID 生成不带连字符的uuid
func GenUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenUUID16 生成16位的短uuid，用于requestId
func GenUUID16() string {
	return GenUUID()[:16]
}
