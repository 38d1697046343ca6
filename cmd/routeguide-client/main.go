package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/samirrijal/routeguide/internal/routeguidepb"
)

var (
	serverAddr         string
	useTLS             bool
	caFile             string
	serverHostOverride string
)

var rootCmd = &cobra.Command{
	Use:           "routeguide-client",
	Short:         "Exercise a routeguide.RouteGuide server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&serverAddr, "addr", "localhost:50051", "server address in host:port form")
	flags.BoolVar(&useTLS, "tls", false, "connect using TLS")
	flags.StringVar(&caFile, "ca-file", "", "CA root certificate file; system roots when empty")
	flags.StringVar(&serverHostOverride, "server-host-override", "", "server name used to verify the TLS hostname")

	rootCmd.AddCommand(getCmd, listCmd, recordCmd, chatCmd, watchCmd, demoCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// dial opens a client connection using the wire codec of this module.
func dial() (*grpc.ClientConn, pb.RouteGuideClient, error) {
	creds := insecure.NewCredentials()
	if useTLS {
		var err error
		if caFile != "" {
			creds, err = credentials.NewClientTLSFromFile(caFile, serverHostOverride)
			if err != nil {
				return nil, nil, fmt.Errorf("load CA: %w", err)
			}
		} else {
			creds = credentials.NewClientTLSFromCert(nil, serverHostOverride)
		}
	}

	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(creds),
		pb.ClientCodec(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", serverAddr, err)
	}
	return conn, pb.NewRouteGuideClient(conn), nil
}
