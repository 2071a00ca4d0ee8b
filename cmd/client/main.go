package main

import (
	"context"
	"fmt"
	"os"
	"time"

	booksv1 "booktrackr/pkg/api/books/v1"

	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const defaultAddress = "localhost:50051"

func main() {
	flags := pflag.NewFlagSet("booktrackr", pflag.ExitOnError)
	address := flags.String("addr", envOr("SERVER_ADDRESS", defaultAddress), "gRPC server address")
	token := flags.String("token", os.Getenv("AUTH_TOKEN"), "bearer token")
	timeout := flags.Duration("timeout", 10*time.Second, "timeout for unary calls")
	flags.SetInterspersed(false)
	flags.Usage = func() { usage(flags) }
	_ = flags.Parse(os.Args[1:])

	if flags.NArg() == 0 {
		flags.Usage()
		os.Exit(2)
	}
	name, args := flags.Arg(0), flags.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		flags.Usage()
		os.Exit(2)
	}

	conn, err := grpc.NewClient(*address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", *address, err)
		os.Exit(1)
	}
	defer conn.Close()

	ctx := context.Background()
	if *token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+*token)
	}
	// watch работает до Ctrl+C, остальные команды ограничены таймаутом
	if !cmd.streaming {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	if err := cmd.run(ctx, booksv1.NewBooksServiceClient(conn), os.Stdout, args); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func usage(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: booktrackr [flags] <command> [args]\n\nCommands:\n")
	for _, name := range commandNames() {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", name, commands[name].usage)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n%s", flags.FlagUsages())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
