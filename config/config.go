package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bookclub/library-service/pkg/kafka"
	"github.com/bookclub/library-service/pkg/logger"
	"github.com/bookclub/library-service/pkg/mailer"
	"github.com/bookclub/library-service/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

type Policy struct {
	// StrictReaderDelete rejects reader deletion while the reader still has
	// active loans. When off, open copies are restored to the catalog and
	// the reader's history is removed with the reader.
	StrictReaderDelete bool   `yaml:"strictReaderDelete" envconfig:"STRICT_READER_DELETE" default:"true"`
	SweepSchedule      string `yaml:"sweepSchedule" envconfig:"OVERDUE_SWEEP_SCHEDULE" default:"@every 1h"`
}

type Config struct {
	Server   HTTPServer    `yaml:"server"`
	Database postgres.DB   `yaml:"db"`
	Kafka    kafka.Config  `yaml:"kafka"`
	SMTP     mailer.Config `yaml:"smtp"`
	Policy   Policy        `yaml:"policy"`
	Log      logger.Log    `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
