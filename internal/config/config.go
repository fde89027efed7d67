// Package config fornece as estruturas e a função de carga da configuração.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config é a estrutura geral de configuração do serviço.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	JWTToken                `yaml:"jwttoken"`
	SMTP                    `yaml:"smtp"`
	Rota                    `yaml:"rota"`
}

// HTTPServer configura o servidor HTTP.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection configura a conexão com o redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken configura a assinatura dos tokens de sessão.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"12h"`
}

// SMTP configura o envio de emails.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// Rota configura o domínio do embarque: o fuso civil usado por todo o
// calendário e a lotação padrão do ônibus quando não há valor gravado.
type Rota struct {
	Timezone    string `yaml:"timezone" env-default:"America/Sao_Paulo"`
	VagasPadrao int    `yaml:"vagas_padrao" env-default:"38"`
}

// MustLoad carrega a configuração do arquivo apontado por CONFIG_PATH.
// Encerra o processo se a variável não estiver definida ou o arquivo não
// puder ser lido.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH não está definida")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("arquivo %s não existe", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("não foi possível ler a configuração: %s", err)
	}
	return &cfg
}
