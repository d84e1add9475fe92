package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database Database `mapstructure:",squash"`
	Counts   Counts   `mapstructure:",squash"`
	Academic Academic `mapstructure:",squash"`
	Gen      Gen      `mapstructure:",squash"`
}

type Database struct {
	Provider     string `mapstructure:"db_provider" validate:"oneof=postgresql postgres mysql sqlite sqlite3 memory"`
	Host         string `mapstructure:"db_host"`
	Port         int    `mapstructure:"db_port" validate:"gte=0,lte=65535"`
	User         string `mapstructure:"db_user"`
	Password     string `mapstructure:"db_password"`
	SSLMode      string `mapstructure:"db_sslmode"`
	AdminName    string `mapstructure:"db_admin_name"`
	SQLiteDir    string `mapstructure:"sqlite_dir"`
	DatabaseList string `mapstructure:"database_list"`
}

// Counts holds per-domain row targets for independent and dependent entities.
type Counts struct {
	Customers      int `mapstructure:"num_customers" validate:"gte=0"`
	Orders         int `mapstructure:"num_orders" validate:"gte=0"`
	Campaigns      int `mapstructure:"num_campaigns" validate:"gte=0"`
	CampaignDays   int `mapstructure:"campaign_days" validate:"gte=0"`
	Feedbacks      int `mapstructure:"num_feedbacks" validate:"gte=0"`
	Transactions   int `mapstructure:"num_transactions" validate:"gte=0"`
	Users          int `mapstructure:"num_users" validate:"gte=0"`
	Activities     int `mapstructure:"num_activities" validate:"gte=0"`
	Employees      int `mapstructure:"num_employees" validate:"gte=0"`
	Projects       int `mapstructure:"num_projects" validate:"gte=0"`
	Events         int `mapstructure:"num_events" validate:"gte=0"`
	SupplyRequests int `mapstructure:"num_supply_requests" validate:"gte=0"`
	Students       int `mapstructure:"num_students" validate:"gte=0"`
	Professors     int `mapstructure:"num_professors" validate:"gte=0"`
	Courses        int `mapstructure:"num_courses" validate:"gte=0"`
	Enrollments    int `mapstructure:"num_enrollments" validate:"gte=0"`
}

// Academic configures the long-absence quota of the academic domain.
type Academic struct {
	LongAbsentTarget    int     `mapstructure:"long_absent_target" validate:"gte=0"`
	LongAbsentHighShare float64 `mapstructure:"long_absent_high_gpa_share" validate:"gte=0,lte=1"`
	HighGPARatio        float64 `mapstructure:"high_gpa_ratio" validate:"gte=0,lte=1"`
	HighGPAThreshold    float64 `mapstructure:"high_gpa_threshold" validate:"gte=0"`
	SessionsPerCourse   int     `mapstructure:"sessions_per_course" validate:"gte=0"`
}

type Gen struct {
	Locale       string `mapstructure:"faker_locale" validate:"oneof=ko_KR en_US"`
	Seed         int64  `mapstructure:"seed"`
	LinkStrategy string `mapstructure:"link_strategy" validate:"oneof=cache store"`
}

var defaults = map[string]interface{}{
	"db_provider":   "postgresql",
	"db_host":       "localhost",
	"db_port":       0,
	"db_user":       "",
	"db_password":   "",
	"db_sslmode":    "disable",
	"db_admin_name": "postgres",
	"sqlite_dir":    "data",
	"database_list": "mcp1,mcp2,mcp3,mcp4,mcp5",

	"num_customers":       1000,
	"num_orders":          5000,
	"num_campaigns":       10,
	"campaign_days":       30,
	"num_feedbacks":       500,
	"num_transactions":    4000,
	"num_users":           800,
	"num_activities":      3000,
	"num_employees":       120,
	"num_projects":        30,
	"num_events":          80,
	"num_supply_requests": 300,
	"num_students":        3000,
	"num_professors":      150,
	"num_courses":         200,
	"num_enrollments":     15000,

	"long_absent_target":         270,
	"long_absent_high_gpa_share": 0.15,
	"high_gpa_ratio":             0.2,
	"high_gpa_threshold":         4.0,
	"sessions_per_course":        15,

	"faker_locale":  "ko_KR",
	"seed":          0,
	"link_strategy": "cache",
}

// SetDefaults registers every known key on v. Registering the keys is also
// what lets AutomaticEnv pick up the matching environment variables during
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultPort(cfg.Database.Provider)
	}

	return &cfg, nil
}

func defaultPort(provider string) int {
	if provider == "mysql" {
		return 3306
	}
	return 5432
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.IsServerProvider() && c.Database.Host == "" {
		return fmt.Errorf("invalid config: DB_HOST is required for provider %s", c.Database.Provider)
	}
	return nil
}

// IsServerProvider reports whether the provider talks to a database server
// over the network, as opposed to files or process memory.
func (c *Config) IsServerProvider() bool {
	switch c.Database.Provider {
	case "postgresql", "postgres", "mysql":
		return true
	}
	return false
}

// Databases returns the target names from DATABASE_LIST.
func (c *Config) Databases() []string {
	var names []string
	for _, name := range strings.Split(c.Database.DatabaseList, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
