// Command token mints an access token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/gestion-backend/pkg/auth"
	"github.com/angelmondragon/gestion-backend/pkg/config"
	"github.com/angelmondragon/gestion-backend/pkg/enums"
)

func main() {
	_ = godotenv.Load()

	userID := flag.Int64("user", 0, "user id (required)")
	username := flag.String("username", "", "username claim")
	role := flag.String("role", string(enums.UserRoleSales), "role: admin|warehouse|sales|viewer")
	superuser := flag.Bool("superuser", false, "grant superuser")
	flag.Parse()

	if *userID <= 0 {
		exitf("missing -user")
	}
	parsedRole, err := enums.ParseUserRole(*role)
	if err != nil {
		exitf("%v", err)
	}

	cfg, err := config.LoadJWT()
	if err != nil {
		exitf("failed to load config: %v", err)
	}

	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		UserID:    *userID,
		Username:  *username,
		Role:      parsedRole,
		Superuser: *superuser,
	})
	if err != nil {
		exitf("failed to mint token: %v", err)
	}
	fmt.Println(token)
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
