package config

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port   string `mapstructure:"port"`
	Mode   string `mapstructure:"mode"`
	NodeID int64  `mapstructure:"nodeId"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SecurityCfg struct {
	HMACSecret string `mapstructure:"hmacSecret"`
	AdminToken string `mapstructure:"adminToken"`
}

// BilldeskCfg BillDesk 接入凭据，五项必填，启动时校验
type BilldeskCfg struct {
	MerchantID      string `mapstructure:"merchantId"`
	ClientID        string `mapstructure:"clientId"`
	EncryptionKey   string `mapstructure:"encryptionKey"`
	EncryptionKeyID string `mapstructure:"encryptionKeyId"`
	SigningKey      string `mapstructure:"signingKey"`
	SigningKeyID    string `mapstructure:"signingKeyId"`
	BaseURL         string `mapstructure:"baseUrl"`
	RedirectURL     string `mapstructure:"redirectUrl"`
	ReturnURL       string `mapstructure:"returnUrl"`
	TimeoutSec      int    `mapstructure:"timeoutSec"`
}

func (b BilldeskCfg) Timeout() time.Duration {
	if b.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.TimeoutSec) * time.Second
}

type Root struct {
	Server   ServerCfg   `mapstructure:"server"`
	Mysql    MysqlCfg    `mapstructure:"mysql"`
	RabbitMQ RabbitCfg   `mapstructure:"rabbitmq"`
	Redis    RedisCfg    `mapstructure:"redis"`
	Security SecurityCfg `mapstructure:"security"`
	Billdesk BilldeskCfg `mapstructure:"billdesk"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	v.SetEnvPrefix("ZAIKA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Billdesk.BaseURL == "" {
		C.Billdesk.BaseURL = "https://pguat.billdesk.io"
	}
	if C.Billdesk.RedirectURL == "" {
		C.Billdesk.RedirectURL = "https://pay.billdesk.com/web/v1_2/embeddedsdk"
	}

	// 网关凭据缺失必须在启动期失败，禁止回退到默认密钥
	mustBilldesk()
}

func mustBilldesk() {
	b := C.Billdesk
	required := []struct{ name, val string }{
		{"billdesk.merchantId", b.MerchantID},
		{"billdesk.clientId", b.ClientID},
		{"billdesk.encryptionKey", b.EncryptionKey},
		{"billdesk.encryptionKeyId", b.EncryptionKeyID},
		{"billdesk.signingKey", b.SigningKey},
		{"billdesk.signingKeyId", b.SigningKeyID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			log.Fatalf("billdesk config missing: %s", r.name)
		}
	}
}
