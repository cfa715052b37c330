package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jwtcodec"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Verify and decode a token",
	Long: `Verify a compact token and print its header and payload as JSON.

Pin the expected algorithm with --alg whenever the key is known; without a pin
the token header selects the algorithm. With --verify=false the token is only
decoded and nothing about it is trusted.

Example:
  jwtctl decode --alg HS256 --secret 'My$ecretK3y' "$TOKEN"
  jwtctl decode --alg RS256 --alg PS256 --key public.pem "$TOKEN"
  jwtctl decode --verify=false "$TOKEN"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := commandConfig(cmd)
		if err != nil {
			return err
		}

		revoker, closeRevoker, err := newRevoker(cmd.Context(), cfg.Revocation)
		if err != nil {
			return err
		}
		defer closeRevoker()
		if revoker != nil {
			cfg.Codec.ClaimsChecker = revoker.Checker(cfg.Codec.ClaimsChecker)
		}

		codec, err := jwt.New(cfg.Codec)
		if err != nil {
			return err
		}

		key, err := keyFromFlags(cmd)
		if err != nil {
			return err
		}

		verify, _ := cmd.Flags().GetBool("verify")
		opts, err := decodeOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		payload, header, err := codec.Decode(strings.TrimSpace(args[0]), key, verify, opts)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(decodedToken{Header: header, Payload: payload}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

type decodedToken struct {
	Header  jwt.Header `json:"header"`
	Payload any        `json:"payload"`
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	addKeyFlags(decodeCmd)
	decodeCmd.Flags().Bool("verify", true, "Verify the signature and claims")
	decodeCmd.Flags().StringArray("alg", nil, "Accepted algorithm (repeatable)")
	decodeCmd.Flags().String("iss", "", "Require this iss claim")
	decodeCmd.Flags().Duration("leeway", 0, "Clock skew allowed for exp and nbf")
	decodeCmd.Flags().String("redis-addr", "", "Reject tokens revoked in this redis")
}

func decodeOptionsFromFlags(cmd *cobra.Command) (jwt.DecodeOptions, error) {
	var opts jwt.DecodeOptions

	algs, _ := cmd.Flags().GetStringArray("alg")
	for _, alg := range algs {
		a := jwt.Algorithm(alg)
		if !a.Supported() {
			return opts, fmt.Errorf("%w: %s", jwt.ErrUnsupportedAlgorithm, alg)
		}
		opts.Algorithms = append(opts.Algorithms, a)
	}

	if iss, _ := cmd.Flags().GetString("iss"); iss != "" {
		opts.Issuer = iss
		opts.VerifyIssuer = true
	}
	opts.Leeway, _ = cmd.Flags().GetDuration("leeway")
	return opts, nil
}
