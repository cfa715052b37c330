package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// revokeCmd represents the revoke command
var revokeCmd = &cobra.Command{
	Use:   "revoke <token>",
	Short: "Revoke a token by its jti claim",
	Long: `Record the jti claim of a token as revoked in redis until the token's exp.
The signature is not checked. Use --id to revoke a token ID directly, --lift
to undo a revocation and --count to print how many revocations are stored.

Example:
  jwtctl revoke --redis-addr localhost:6379 "$TOKEN"
  jwtctl revoke --redis-addr localhost:6379 --id 2c1f... --ttl 1h
  jwtctl revoke --redis-addr localhost:6379 --lift --id 2c1f...
  jwtctl revoke --redis-addr localhost:6379 --count`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := commandConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Revocation.RedisAddr == "" {
			return errors.New("revocation needs a redis address (--redis-addr or revocation.redis_addr)")
		}

		id, _ := cmd.Flags().GetString("id")
		lift, _ := cmd.Flags().GetBool("lift")
		count, _ := cmd.Flags().GetBool("count")

		if count {
			if id != "" || len(args) > 0 || lift {
				return errors.New("--count takes no token, --id or --lift")
			}
		} else if (id == "") == (len(args) == 0) {
			return errors.New("give either a token or --id")
		}

		revoker, closeRevoker, err := newRevoker(cmd.Context(), cfg.Revocation)
		if err != nil {
			return err
		}
		defer closeRevoker()

		ctx := cmd.Context()
		logger := log.WithField("redis", cfg.Revocation.RedisAddr)

		switch {
		case count:
			n, err := revoker.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		case lift && id != "":
			err = revoker.UnrevokeID(ctx, id)
		case lift:
			err = revoker.Unrevoke(ctx, strings.TrimSpace(args[0]))
		case id != "":
			ttl, _ := cmd.Flags().GetDuration("ttl")
			if ttl <= 0 {
				ttl = cfg.Revocation.DefaultTTL
			}
			err = revoker.RevokeID(ctx, id, time.Now().Add(ttl))
		default:
			err = revoker.Revoke(ctx, strings.TrimSpace(args[0]))
		}
		if err != nil {
			return err
		}

		if lift {
			logger.Info("revocation lifted")
			fmt.Fprintln(cmd.OutOrStdout(), "revocation lifted")
			return nil
		}
		logger.Info("token revoked")
		fmt.Fprintln(cmd.OutOrStdout(), "revoked")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(revokeCmd)

	revokeCmd.Flags().String("redis-addr", "", "Redis address holding revocations")
	revokeCmd.Flags().String("id", "", "Token ID to revoke instead of a token")
	revokeCmd.Flags().Duration("ttl", 0, "How long --id stays revoked (default from config)")
	revokeCmd.Flags().Bool("lift", false, "Lift the revocation instead of adding it")
	revokeCmd.Flags().Bool("count", false, "Print the number of stored revocations")
}
