package factory

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/cache"
	"github.com/mikey/mail-triage/internal/adapters/csvsource"
	"github.com/mikey/mail-triage/internal/adapters/imapsource"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/credential"
	"github.com/mikey/mail-triage/internal/utils"
)

func testConfig(set map[string]interface{}) (*config.Config, *viper.Viper) {
	v := config.NewEmptyViper()
	for k, val := range set {
		v.Set(k, val)
	}
	return config.NewFromViper(v), v
}

func newSourceFactory(cfg *config.Config, secrets SecretGetter) *SourceFactory {
	logger := zap.NewNop()
	tp := utils.NewTextProcessor(logger)
	return NewSourceFactory(cfg, logger, tp, NewTextProcessorFactory(logger).CreateParser(tp), secrets)
}

func TestCreateCSVSource(t *testing.T) {
	cfg, _ := testConfig(map[string]interface{}{"csv.path": "emails.csv"})
	src, err := newSourceFactory(cfg, nil).CreateMessageSource()
	require.NoError(t, err)
	assert.IsType(t, &csvsource.Source{}, src)

	cfg, _ = testConfig(nil)
	_, err = newSourceFactory(cfg, nil).CreateMessageSource()
	assert.ErrorContains(t, err, "csv path is required")
}

func TestCreateIMAPSourceFromKeyring(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{
		{Key: credential.IMAPPasswordKey("me@example.com"), Data: []byte("app-password")},
	})
	cfg, _ := testConfig(map[string]interface{}{
		"source.type":      "imap",
		"imap.username":    "me@example.com",
		"imap.use_keyring": true,
	})

	f := newSourceFactory(cfg, credential.NewStoreFromKeyring(ring))
	imapCfg, err := f.imapConfig()
	require.NoError(t, err)
	assert.Equal(t, "app-password", imapCfg.Password)
	assert.Equal(t, "993", imapCfg.Port)
	assert.Equal(t, "INBOX", imapCfg.Mailbox)

	src, err := f.CreateMessageSource()
	require.NoError(t, err)
	assert.IsType(t, &imapsource.Source{}, src)
}

func TestCreateIMAPSourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]interface{}
		wantErr string
	}{
		{
			name:    "missing username",
			set:     map[string]interface{}{"source.type": "imap"},
			wantErr: "username is required",
		},
		{
			name:    "missing password",
			set:     map[string]interface{}{"source.type": "imap", "imap.username": "me"},
			wantErr: "password is required",
		},
		{
			name:    "keyring without store",
			set:     map[string]interface{}{"source.type": "imap", "imap.username": "me", "imap.use_keyring": true},
			wantErr: "keyring is not available",
		},
		{
			name:    "unknown source",
			set:     map[string]interface{}{"source.type": "pop3"},
			wantErr: "unsupported source type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := testConfig(tt.set)
			_, err := newSourceFactory(cfg, nil).CreateMessageSource()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCreatePolisher(t *testing.T) {
	logger := zap.NewNop()
	tp := utils.NewTextProcessor(logger)

	cfg, _ := testConfig(nil)
	p, err := NewPolisherFactory(cfg, logger, tp).CreatePolisher()
	require.NoError(t, err)
	assert.Nil(t, p)

	cfg, _ = testConfig(map[string]interface{}{"polish.provider": "openai"})
	_, err = NewPolisherFactory(cfg, logger, tp).CreatePolisher()
	assert.ErrorContains(t, err, "API key is required")

	cfg, _ = testConfig(map[string]interface{}{"polish.provider": "openai", "openai.api_key": "k"})
	p, err = NewPolisherFactory(cfg, logger, tp).CreatePolisher()
	require.NoError(t, err)
	assert.NotNil(t, p)

	cfg, _ = testConfig(map[string]interface{}{"polish.provider": "llama"})
	_, err = NewPolisherFactory(cfg, logger, tp).CreatePolisher()
	assert.ErrorContains(t, err, "unsupported polish provider")
}

func TestCreateCacheRepository(t *testing.T) {
	cfg, _ := testConfig(map[string]interface{}{"cache.cleanup_frequency": "0s"})
	repo, err := NewCacheFactory(cfg, zap.NewNop()).CreateCacheRepository()
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache{}, repo)

	cfg, _ = testConfig(map[string]interface{}{"cache.type": "redis"})
	_, err = NewCacheFactory(cfg, zap.NewNop()).CreateCacheRepository()
	assert.ErrorContains(t, err, "unsupported cache type")

	cfg, _ = testConfig(map[string]interface{}{"cache.cleanup_frequency": "often"})
	_, err = NewCacheFactory(cfg, zap.NewNop()).CreateCacheRepository()
	assert.ErrorContains(t, err, "invalid cache cleanup frequency")
}

func TestCreateAnalyzer(t *testing.T) {
	cfg, _ := testConfig(map[string]interface{}{"analysis.match_mode": "word"})
	a, err := NewAnalyzerFactory(cfg).CreateAnalyzer()
	require.NoError(t, err)
	assert.NotNil(t, a)

	cfg, _ = testConfig(map[string]interface{}{"analysis.match_mode": "fuzzy"})
	_, err = NewAnalyzerFactory(cfg).CreateAnalyzer()
	assert.Error(t, err)
}

func TestCreateAssistantService(t *testing.T) {
	cfg, _ := testConfig(nil)
	analyzer, err := NewAnalyzerFactory(cfg).CreateAnalyzer()
	require.NoError(t, err)

	svc, err := NewCacheFactory(cfg, zap.NewNop()).CreateAssistantService(analyzer, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg, _ = testConfig(map[string]interface{}{"cache.ttl": "forever"})
	_, err = NewCacheFactory(cfg, zap.NewNop()).CreateAssistantService(analyzer, nil, nil)
	assert.ErrorContains(t, err, "invalid cache ttl")
}
