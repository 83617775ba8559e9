package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env   string `yaml:"env" env-default:"local"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env-default:""`
		Database string `yaml:"database" env-default:"schooldesk"`
	} `yaml:"mongo"`
	Auth struct {
		TokenTTLHours int `yaml:"token_ttl_hours" env-default:"72"`
		BcryptCost    int `yaml:"bcrypt_cost" env-default:"10"`
	} `yaml:"auth"`
	Bootstrap struct {
		AdminUsername string `yaml:"admin_username" env-default:"root"`
		AdminEmail    string `yaml:"admin_email" env-default:""`
		AdminPassword string `yaml:"admin_password" env-default:""`
	} `yaml:"bootstrap"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9200"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
