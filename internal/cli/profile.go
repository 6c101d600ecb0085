package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/quartermaster/internal/legacyhash"
)

func newGetProfileCmd() *cobra.Command {
	var (
		rid         string
		sid         int64
		realm       string
		realmDigest string
	)

	cmd := &cobra.Command{
		Use:   "get-profile <username>",
		Short: "Fetch a player's profile the way a game server would",
		Long: `get-profile computes the legacy hash for the username and issues a
get_profile request with the supplied credentials. The server's XML response
is printed as-is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			q := url.Values{}
			q.Set("hash", fmt.Sprintf("%d", legacyhash.Hash64(username)))
			q.Set("username", username)
			q.Set("rid", rid)
			q.Set("sid", fmt.Sprintf("%d", sid))
			q.Set("realm", realm)
			q.Set("realm_digest", realmDigest)

			doc, err := client.GetXML("/get_profile?" + q.Encode())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(ProfileResult{Username: username, Document: doc})
			return nil
		},
	}

	cmd.Flags().StringVar(&rid, "rid", "", "Player RID (64 hex chars)")
	cmd.Flags().Int64Var(&sid, "sid", 0, "Player SID")
	cmd.Flags().StringVar(&realm, "realm", "", "Realm name")
	cmd.Flags().StringVar(&realmDigest, "realm-digest", "", "Realm digest (64 hex chars)")
	_ = cmd.MarkFlagRequired("rid")
	_ = cmd.MarkFlagRequired("sid")
	_ = cmd.MarkFlagRequired("realm")
	_ = cmd.MarkFlagRequired("realm-digest")

	return cmd
}
