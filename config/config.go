package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Defaults DefaultsConfig
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

type DefaultsConfig struct {
	AdminPassword   string `mapstructure:"admin_password"`
	AdminEmployeeID string `mapstructure:"admin_employee_id"`
	InvoicePrefix   string `mapstructure:"invoice_prefix"`
	CompanyName     string `mapstructure:"company_name"`
	CompanyAddress  string `mapstructure:"company_address"`
	CompanyEmail    string `mapstructure:"company_email"`
	CompanyPhone    string `mapstructure:"company_phone"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	// Enable reading from OS environment variables as fallback/override
	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "PORT")
	viper.BindEnv("DATABASE_URL")

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		Defaults: DefaultsConfig{
			AdminPassword:   viper.GetString("ADMIN_PASSWORD"),
			AdminEmployeeID: viper.GetString("ADMIN_EMPLOYEE_ID"),
			InvoicePrefix:   viper.GetString("INVOICE_PREFIX"),
			CompanyName:     viper.GetString("COMPANY_NAME"),
			CompanyAddress:  viper.GetString("COMPANY_ADDRESS"),
			CompanyEmail:    viper.GetString("COMPANY_EMAIL"),
			CompanyPhone:    viper.GetString("COMPANY_PHONE"),
		},
	}

	log.Printf("Configuration loaded:")
	log.Printf("- Server Port: %s", AppConfig.Server.Port)
	log.Printf("- Server Env: %s", AppConfig.Server.Env)
	log.Printf("- Database Host: %s", AppConfig.Database.Host)
	log.Printf("- Database Name: %s", AppConfig.Database.Name)
	log.Printf("- Invoice Prefix: %s", AppConfig.Defaults.InvoicePrefix)
}
