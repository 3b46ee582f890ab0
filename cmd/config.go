package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PochtaPublicBaseURL   string
	PochtaOtpravkaBaseURL string
	PochtaAPIToken        string
	PochtaLogin           string
	PochtaPassword        string

	SenderPostalCode string
}
