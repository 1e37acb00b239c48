package main

import (
	"errors"
	"fmt"
	"time"

	"voice-expense/pkg/auth"

	"github.com/spf13/cobra"
)

var (
	flagSubject string
	flagTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&flagSubject, "subject", "expensectl", "Token subject")
	tokenCmd.Flags().DurationVar(&flagTTL, "ttl", 0, "Token lifetime (default JWT_EXPIRATION_HOURS)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	if cfg.JWT.SecretKey == "" {
		return errors.New("JWT_SECRET_KEY is not set; the API runs without authentication")
	}
	token, err := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration).Generate(flagSubject, flagTTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
