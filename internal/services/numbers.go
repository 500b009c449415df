package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateNumber builds a human-readable reference number such as
// APT-20240115-3F9A2C: a prefix, the date stamp, and a random 6-character
// suffix. The suffix alone does not guarantee uniqueness; each numbered
// entity backs the column with a unique index so a collision fails the
// insert instead of going unnoticed.
func GenerateNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return prefix + "-" + now.Format("20060102") + "-" + suffix
}
