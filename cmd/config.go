package cmd

import "time"

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	AskTimeout       time.Duration
	MailboxSize      int
	FulfillmentDelay time.Duration
	StatsJobEnabled  bool
}
