package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL string
	Port        string

	// Twilio credentials. Empty SID/token disables outbound sends but
	// keeps the synchronous webhook reply working.
	TwilioAccountSID string
	TwilioAuthToken  string
	BotNumber        string

	// Fallback recipient for the daily digest when a ledger row carries
	// no usable phone.
	NotifyDefaultTo string

	// Brokers for the transaction event stream. Empty disables publishing.
	KafkaBrokers []string

	LoanDueDays int
}

func MustLoad() Config {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dueDays := 1
	if v := os.Getenv("LOAN_DUE_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("LOAN_DUE_DAYS inválido: %q", v)
		}
		dueDays = n
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Config{
		DatabaseURL:      dsn,
		Port:             port,
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		BotNumber:        os.Getenv("BOT_NUMBER"),
		NotifyDefaultTo:  os.Getenv("NOTIFY_DEFAULT_TO"),
		KafkaBrokers:     brokers,
		LoanDueDays:      dueDays,
	}
}
