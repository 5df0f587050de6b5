// Package cli wraps query.Reader with spf13/cobra commands (GetQueryCmd,
// one Cmd* constructor per query), calling the reader in-process rather
// than over a gRPC client: there is no wire service behind this engine
// to call.
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tokenize-x/ibc-core/query"
)

// ReaderFunc returns a query.Reader bound to the host's current state,
// called fresh for every command invocation so the CLI always reads
// whatever the host last committed.
type ReaderFunc func() *query.Reader

// GetQueryCmd returns the parent command for all CLI query commands.
func GetQueryCmd(newReader ReaderFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "ibc",
		Short:                      "Querying commands for the IBC core engine",
		DisableFlagParsing:         false,
		SuggestionsMinimumDistance: 2,
	}

	cmd.AddCommand(CmdQueryClient(newReader))
	cmd.AddCommand(CmdQueryConnection(newReader))
	cmd.AddCommand(CmdQueryConnections(newReader))
	cmd.AddCommand(CmdQueryChannel(newReader))
	cmd.AddCommand(CmdQueryChannels(newReader))
	cmd.AddCommand(CmdQueryConnectionChannels(newReader))
	cmd.AddCommand(CmdQueryPacketCommitments(newReader))
	cmd.AddCommand(CmdQueryUnreceivedPackets(newReader))

	return cmd
}

// printJSON writes v to cmd's configured output, mirroring
// clientCtx.PrintProto(res) (which writes through clientCtx.Output
// rather than directly to os.Stdout) so callers that redirect a command's
// output via SetOut see it.
func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

// CmdQueryClient fetches a single light client's state.
func CmdQueryClient(newReader ReaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "client [client-id]",
		Short: "Query a light client's state by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientState, found := newReader().ClientState(args[0])
			if !found {
				return fmt.Errorf("client %s not found", args[0])
			}
			return printJSON(cmd, clientState)
		},
	}
}

// CmdQueryConnection fetches a single connection end.
func CmdQueryConnection(newReader ReaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "connection [connection-id]",
		Short: "Query a connection end by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, found := newReader().Connection(args[0])
			if !found {
				return fmt.Errorf("connection %s not found", args[0])
			}
			return printJSON(cmd, conn)
		},
	}
}

// CmdQueryConnections pages over every stored connection.
func CmdQueryConnections(newReader ReaderFunc) *cobra.Command {
	var cursor string
	var limit int
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Query all connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := newReader().Connections(cursor, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd, page)
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "page cursor from a previous response")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries to return")
	return cmd
}

// CmdQueryChannel fetches a single channel end.
func CmdQueryChannel(newReader ReaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "channel [port-id] [channel-id]",
		Short: "Query a channel end by port and channel ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, found := newReader().Channel(args[0], args[1])
			if !found {
				return fmt.Errorf("channel %s/%s not found", args[0], args[1])
			}
			return printJSON(cmd, channel)
		},
	}
}

// CmdQueryChannels pages over every stored channel.
func CmdQueryChannels(newReader ReaderFunc) *cobra.Command {
	var cursor string
	var limit int
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "Query all channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := newReader().Channels(cursor, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd, page)
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "page cursor from a previous response")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries to return")
	return cmd
}

// CmdQueryConnectionChannels lists the channel ends riding on a
// connection.
func CmdQueryConnectionChannels(newReader ReaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "connection-channels [connection-id]",
		Short: "Query all channel ends associated with a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, newReader().ConnectionChannels(args[0]))
		},
	}
}

// CmdQueryPacketCommitments pages over a channel's pending packet
// commitments.
func CmdQueryPacketCommitments(newReader ReaderFunc) *cobra.Command {
	var cursor string
	var limit int
	cmd := &cobra.Command{
		Use:   "packet-commitments [port-id] [channel-id]",
		Short: "Query pending packet commitments on a channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := newReader().PacketCommitments(args[0], args[1], cursor, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd, page)
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "page cursor from a previous response")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries to return")
	return cmd
}

// CmdQueryUnreceivedPackets filters a comma-separated sequence list down
// to those a channel has not yet received.
func CmdQueryUnreceivedPackets(newReader ReaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "unreceived-packets [port-id] [channel-id] [sequences]",
		Short: "Query which of the given sequences a channel has not yet received",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sequences, err := parseSequences(args[2])
			if err != nil {
				return err
			}
			unreceived, err := newReader().UnreceivedPackets(args[0], args[1], sequences)
			if err != nil {
				return err
			}
			return printJSON(cmd, unreceived)
		},
	}
}

func parseSequences(raw string) ([]uint64, error) {
	fields := strings.Split(raw, ",")
	out := make([]uint64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sequence %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
