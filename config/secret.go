package config

import (
	"course-platform-auth/internal/util"
	"fmt"
	"sync"
)

// MinSecretLength : минимальная длина секрета подписи токенов в байтах
const MinSecretLength = 32

// SigningSecret : секрет подписи JWT. Создается один раз при старте и дальше только читается.
type SigningSecret []byte

var (
	temporarySecretOnce sync.Once
	temporarySecret     SigningSecret
	temporarySecretErr  error
)

// ResolveSigningSecret возвращает секрет подписи для окружения.
// В production короткий или пустой секрет является ошибкой. В остальных окружениях
// генерируется временный секрет, общий для всего процесса (после перезапуска он будет другим).
func ResolveSigningSecret(environment, raw string) (SigningSecret, error) {
	if len(raw) >= MinSecretLength {
		return SigningSecret(raw), nil
	}

	if environment == EnvProduction {
		return nil, fmt.Errorf("секрет подписи должен быть не короче %d байт", MinSecretLength)
	}

	temporarySecretOnce.Do(func() {
		token, err := util.GenerateRandomToken(2 * MinSecretLength)
		if err != nil {
			temporarySecretErr = err
			return
		}
		temporarySecret = SigningSecret(token)
		util.Logger().Warn("JWT_SECRET не задан или слишком короткий, сгенерирован временный секрет",
			"environment", environment)
	})

	if temporarySecretErr != nil {
		return nil, fmt.Errorf("не удалось сгенерировать временный секрет: %w", temporarySecretErr)
	}

	return temporarySecret, nil
}
