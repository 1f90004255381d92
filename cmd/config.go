package cmd

// Config carries the process configuration loaded from the environment.
type Config struct {
	HTTPPort               string `validate:"required"`
	DBHost                 string `validate:"required"`
	DBPort                 string `validate:"required"`
	DBUser                 string `validate:"required"`
	DBPassword             string `validate:"required"`
	DBName                 string `validate:"required"`
	DBSslMode              string `validate:"required"`
	KafkaHost              string `validate:"required"`
	KafkaOrderChangedTopic string `validate:"required"`
	InventoryServiceURL    string `validate:"required,url"`
	RateProviderURL        string `validate:"required,url"`
	RateRefreshSchedule    string `validate:"required"`
}
