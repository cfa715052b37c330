package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jwtcodec"
	"github.com/cybergodev/jwtcodec/internal/keyfile"
)

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().String("secret", "", "HMAC secret")
	cmd.Flags().String("secret-file", "", "File holding the HMAC secret")
	cmd.Flags().String("key", "", "PEM or JWK key file")
	cmd.Flags().String("kid", "", "Key ID selecting a key from a JWK set")
}

// keyFromFlags builds the key named by the key flags. At most one source may
// be given; with none the zero key is returned.
func keyFromFlags(cmd *cobra.Command) (jwt.Key, error) {
	secret, _ := cmd.Flags().GetString("secret")
	secretFile, _ := cmd.Flags().GetString("secret-file")
	keyPath, _ := cmd.Flags().GetString("key")
	kid, _ := cmd.Flags().GetString("kid")

	sources := 0
	for _, changed := range []bool{cmd.Flags().Changed("secret"), secretFile != "", keyPath != ""} {
		if changed {
			sources++
		}
	}
	if sources > 1 {
		return jwt.Key{}, errors.New("only one of --secret, --secret-file and --key may be given")
	}

	switch {
	case cmd.Flags().Changed("secret"):
		return jwt.NewSecretKeyString(secret), nil
	case secretFile != "":
		data, err := os.ReadFile(secretFile)
		if err != nil {
			return jwt.Key{}, fmt.Errorf("failed to read secret: %w", err)
		}
		return jwt.NewSecretKey(bytes.TrimRight(data, "\r\n")), nil
	case keyPath != "":
		return keyfile.Load(keyPath, kid)
	default:
		return jwt.Key{}, nil
	}
}
