// Command token-gen mints a registry JWT for ops use, signed with the same
// secret the server validates against.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"network-registry.backend/internal/config"
	"network-registry.backend/pkg/jwt"
)

var (
	printfFn = fmt.Printf
	fatalfFn = log.Fatalf
)

func resolveRole(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "admin"
}

func main() {
	cfg := config.Load()
	role := resolveRole(os.Args[1:])

	svc := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
	token, err := svc.GenerateToken("ops", "ops@localhost", role)
	if err != nil {
		fatalfFn("Failed to generate token: %v", err)
	}

	printfFn("Role:    %s\n", role)
	printfFn("Expires: %s\n", time.Now().Add(cfg.JWT.Expiry).Format(time.RFC3339))
	printfFn("Token:   %s\n", token)
}
