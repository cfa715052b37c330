package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jwtcodec"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [payload]",
	Short: "Sign a JSON payload into a token",
	Long: `Sign a JSON payload into a compact token.

The payload is read from the argument, or from stdin when it is "-" or
missing. Claim flags (--iss, --sub, --exp, --jti) require an object payload.

Example:
  jwtctl encode --alg HS256 --secret 'My$ecretK3y' '{"user_id":"some@user.tld"}'
  echo '{"sub":"alice"}' | jwtctl encode --alg ES256 --key private.pem --exp 1h --jti`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := commandConfig(cmd)
		if err != nil {
			return err
		}
		codec, err := jwt.New(cfg.Codec)
		if err != nil {
			return err
		}

		key, err := keyFromFlags(cmd)
		if err != nil {
			return err
		}

		payload, err := readPayload(cmd, args)
		if err != nil {
			return err
		}
		if payload, err = applyClaimFlags(cmd, payload, time.Now()); err != nil {
			return err
		}

		header, err := headerFromFlags(cmd)
		if err != nil {
			return err
		}

		alg, _ := cmd.Flags().GetString("alg")
		token, err := codec.Encode(payload, key, jwt.Algorithm(alg), header)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	addKeyFlags(encodeCmd)
	encodeCmd.Flags().String("alg", "", "Signing algorithm (default from config, HS256)")
	encodeCmd.Flags().StringArray("header", nil, "Extra header member as name=value (repeatable)")
	encodeCmd.Flags().String("iss", "", "Set the iss claim")
	encodeCmd.Flags().String("sub", "", "Set the sub claim")
	encodeCmd.Flags().StringArray("aud", nil, "Add an aud claim value (repeatable)")
	encodeCmd.Flags().Duration("exp", 0, "Set exp to now plus this duration")
	encodeCmd.Flags().Duration("nbf", 0, "Set nbf to now plus this duration")
	encodeCmd.Flags().Bool("iat", false, "Set iat to now")
	encodeCmd.Flags().Bool("jti", false, "Set jti to a random UUID")
}

func readPayload(cmd *cobra.Command, args []string) (any, error) {
	var data []byte
	if len(args) == 0 || args[0] == "-" {
		var err error
		if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
	} else {
		data = []byte(args[0])
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("payload holds more than one JSON value")
	}
	return payload, nil
}

func applyClaimFlags(cmd *cobra.Command, payload any, now time.Time) (any, error) {
	flags := cmd.Flags()
	claims := map[string]any{}

	if iss, _ := flags.GetString("iss"); iss != "" {
		claims["iss"] = iss
	}
	if sub, _ := flags.GetString("sub"); sub != "" {
		claims["sub"] = sub
	}
	if aud, _ := flags.GetStringArray("aud"); len(aud) == 1 {
		claims["aud"] = aud[0]
	} else if len(aud) > 1 {
		claims["aud"] = aud
	}
	if flags.Changed("exp") {
		d, _ := flags.GetDuration("exp")
		claims["exp"] = jwt.NewNumericDate(now.Add(d))
	}
	if flags.Changed("nbf") {
		d, _ := flags.GetDuration("nbf")
		claims["nbf"] = jwt.NewNumericDate(now.Add(d))
	}
	if iat, _ := flags.GetBool("iat"); iat {
		claims["iat"] = jwt.NewNumericDate(now)
	}
	if jti, _ := flags.GetBool("jti"); jti {
		claims["jti"] = uuid.NewString()
	}

	if len(claims) == 0 {
		return payload, nil
	}

	object, ok := payload.(map[string]any)
	if !ok {
		return nil, errors.New("claim flags require a JSON object payload")
	}
	for name, value := range claims {
		object[name] = value
	}
	return object, nil
}

func headerFromFlags(cmd *cobra.Command) (jwt.Header, error) {
	members, _ := cmd.Flags().GetStringArray("header")
	if len(members) == 0 {
		return nil, nil
	}

	header := jwt.Header{}
	for _, member := range members {
		name, value, ok := strings.Cut(member, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, want name=value", member)
		}
		header[name] = value
	}
	return header, nil
}
