package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, AlgorithmHS256, config.Algorithm)
	assert.Empty(t, config.Algorithms)
	assert.Equal(t, 8192, config.MaxTokenLength)
	assert.True(t, config.VerifyExpiration)
	assert.False(t, config.VerifyIssuer)
	assert.IsType(t, DefaultClaimsValidator{}, config.ClaimsValidator)
	assert.IsType(t, RegisteredClaimsChecker{}, config.ClaimsChecker)
	assert.NoError(t, config.Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{"default", func(*Config) {}, false},
		{"empty algorithm", func(c *Config) { c.Algorithm = "" }, false},
		{"every algorithm pinned", func(c *Config) { c.Algorithms = Algorithms() }, false},
		{"unsupported algorithm", func(c *Config) { c.Algorithm = "HS123" }, true},
		{"unsupported pin", func(c *Config) { c.Algorithms = []Algorithm{AlgorithmHS256, "RS1"} }, true},
		{"negative max length", func(c *Config) { c.MaxTokenLength = -1 }, true},
		{"negative leeway", func(c *Config) { c.Leeway = -time.Second }, true},
		{"issuer verification without issuer", func(c *Config) { c.VerifyIssuer = true }, true},
		{"issuer verification", func(c *Config) {
			c.VerifyIssuer = true
			c.Issuer = "svc"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidConfig)

				_, newErr := New(config)
				assert.ErrorIs(t, newErr, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}

	var nilConfig *Config
	assert.ErrorIs(t, nilConfig.Validate(), ErrInvalidConfig)
}

func TestNewFillsDefaults(t *testing.T) {
	codec, err := New(Config{})
	require.NoError(t, err)

	assert.Equal(t, DefaultAlgorithm, codec.Algorithm())
	assert.Equal(t, 8192, codec.maxTokenLength)
	assert.NotNil(t, codec.logger)
	assert.Nil(t, codec.validator)
	assert.Nil(t, codec.checker)

	fromDefault, err := New()
	require.NoError(t, err)
	assert.NotNil(t, fromDefault.checker)
}

func TestNewCopiesAlgorithms(t *testing.T) {
	config := DefaultConfig()
	config.Algorithms = []Algorithm{AlgorithmHS256}

	codec, err := New(config)
	require.NoError(t, err)

	config.Algorithms[0] = AlgorithmHS512
	_, _, err = codec.Decode(testVectors[AlgorithmHS256], NewSecretKeyString(testSecret), true)
	assert.NoError(t, err)
}

func TestConfigYAML(t *testing.T) {
	raw := `
algorithm: ES256
algorithms: [ES256, ES384]
max_token_length: 4096
issuer: auth.example
verify_issuer: true
verify_expiration: true
leeway: 30s
`
	config := DefaultConfig()
	require.NoError(t, yaml.Unmarshal([]byte(raw), &config))

	assert.Equal(t, AlgorithmES256, config.Algorithm)
	assert.Equal(t, []Algorithm{AlgorithmES256, AlgorithmES384}, config.Algorithms)
	assert.Equal(t, 4096, config.MaxTokenLength)
	assert.Equal(t, "auth.example", config.Issuer)
	assert.True(t, config.VerifyIssuer)
	assert.Equal(t, 30*time.Second, config.Leeway)
	assert.NotNil(t, config.ClaimsValidator, "hooks are not touched by YAML")
	assert.NoError(t, config.Validate())
}

func TestMaxTokenLength(t *testing.T) {
	codec := newTestCodec(t, func(c *Config) { c.MaxTokenLength = 64 })
	key := NewSecretKeyString(testSecret)

	_, _, err := codec.Decode(testVectors[AlgorithmHS256], key, true)
	assert.ErrorIs(t, err, ErrTokenTooLarge)

	_, _, err = codec.Decode(testVectors[AlgorithmNone], key, false)
	assert.NoError(t, err)

	_, err = codec.Encode(map[string]any{"sub": strings.Repeat("a", 64)}, key, AlgorithmHS256, nil)
	assert.ErrorIs(t, err, ErrTokenTooLarge)

	token, err := codec.Encode(map[string]any{"a": 1}, key, AlgorithmHS256, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(token), 64)
}

func TestEncodeDefaultMaxTokenLength(t *testing.T) {
	codec := newTestCodec(t)
	key := NewSecretKeyString(testSecret)

	_, err := codec.Encode(map[string]any{"blob": strings.Repeat("x", 9*1024)}, key, AlgorithmHS256, nil)
	assert.ErrorIs(t, err, ErrTokenTooLarge)

	token, err := codec.Encode(map[string]any{"blob": strings.Repeat("x", 4*1024)}, key, AlgorithmHS256, nil)
	require.NoError(t, err)
	_, _, err = codec.Decode(token, key, true)
	assert.NoError(t, err)
}

func TestCodecLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	codec := newTestCodec(t, func(c *Config) { c.Logger = logger })

	_, _, err := codec.Decode(testVectors[AlgorithmHS256], NewSecretKeyString("wrong"), true)
	require.ErrorIs(t, err, ErrVerificationFailed)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "token rejected", entry.Message)
	assert.Equal(t, AlgorithmHS256, entry.Data["alg"])

	hook.Reset()
	_, err = codec.Encode(testPayload, NewSecretKeyString("secret"), AlgorithmHS256, nil)
	require.NoError(t, err)

	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "signing with a weak HMAC secret", entry.Message)

	hook.Reset()
	_, err = codec.Encode(testPayload, NewSecretKeyString("Kx9#mP2$vL8@nQ5!wR7&tY3^uI6*oE4%aS1+dF0-gH9~jK2#bN5$cM8@xZ7&vB4!"), AlgorithmHS256, nil)
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())
}
