package ticket

import (
	"strings"

	"github.com/google/uuid"
)

// Prefix префикс токена погашения
const Prefix = "TKT-"

// Generator выпускает непрозрачные токены билетов
type Generator struct{}

// NewGenerator создает генератор токенов
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate возвращает новый уникальный токен вида TKT-<uuid>
func (g *Generator) Generate() string {
	return Prefix + strings.ToUpper(uuid.NewString())
}

// IsValid проверяет формат токена
func IsValid(token string) bool {
	if !strings.HasPrefix(token, Prefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(token, Prefix))
	return err == nil
}
