package env

import (
	"github.com/joho/godotenv"
)

// EffectiveValue returns the value a dotenv loader reads for key from
// content. Loaders unquote values, cut inline comments and let later
// duplicates win, so this can differ from what was written.
func EffectiveValue(content, key string) (string, bool, error) {
	vars, err := godotenv.Unmarshal(content)
	if err != nil {
		return "", false, err
	}
	v, ok := vars[key]
	return v, ok, nil
}
