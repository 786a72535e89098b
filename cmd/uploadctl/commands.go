package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendant/simple-upload/pkg/simpleupload"
	"github.com/tendant/simple-upload/pkg/simpleupload/config"
	"github.com/tendant/simple-upload/pkg/simpleupload/token"
	"github.com/tendant/simple-upload/pkg/utils"
)

// probeResult mirrors the server's resolve response shape
type probeResult struct {
	URL         string `json:"url"`
	Scheme      string `json:"scheme"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	SizeKnown   bool   `json:"size_known"`
}

// NewProbeCommand creates the probe command
func NewProbeCommand() *cobra.Command {
	var blockLocal bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "probe <url>",
		Short: "Resolve content type and size of a remote resource",
		Long: `Probe a remote resource for its content type and byte size without
transferring the body. HTTP and HTTPS URLs are probed with a single HEAD
request; FTP and SFTP URLs with a SIZE command; s3:// and gs:// URLs
through the provider metadata APIs when enabled via environment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := args[0]

			cfg, err := config.Load(config.WithEnv("UPLOAD_"))
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			ctx := cmd.Context()
			resolver, err := cfg.BuildResolver(ctx)
			if err != nil {
				return fmt.Errorf("building resolver: %w", err)
			}

			class := simpleupload.ClassifyURL(rawURL)
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Printf("Probing %s (scheme class: %s)\n", rawURL, class)
			}

			meta, err := resolver.Resolve(ctx, simpleupload.ResolveRequest{
				URL:             rawURL,
				BlockLocalAddrs: blockLocal,
			})
			if err != nil {
				return fmt.Errorf("probe failed: %w", err)
			}

			result := probeResult{
				URL:         rawURL,
				Scheme:      string(class),
				ContentType: meta.ContentType,
				SizeBytes:   meta.Size,
				SizeKnown:   meta.SizeKnown(),
			}

			if asJSON {
				return printJSON(result)
			}

			contentType := result.ContentType
			if contentType == "" {
				contentType = "unknown"
			}

			fmt.Printf("URL:          %s\n", result.URL)
			fmt.Printf("Scheme:       %s\n", result.Scheme)
			fmt.Printf("Content-Type: %s\n", contentType)
			if result.SizeKnown {
				fmt.Printf("Size:         %d bytes\n", result.SizeBytes)
			} else {
				fmt.Printf("Size:         unknown\n")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&blockLocal, "block-local", true, "Refuse loopback, private, and link-local targets")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

// NewTokenCommand creates the token command group
func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Encrypt and decrypt upload tokens",
	}

	cmd.AddCommand(NewTokenEncryptCommand())
	cmd.AddCommand(NewTokenDecryptCommand())

	return cmd
}

// NewTokenEncryptCommand creates the token encrypt command
func NewTokenEncryptCommand() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "encrypt <plaintext>",
		Short: "Encrypt a value into a URL-safe token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSecret(secret)
			if err != nil {
				return err
			}

			tok, err := token.Encrypt(args[0], []byte(s))
			if err != nil {
				return fmt.Errorf("encrypt failed: %w", err)
			}

			fmt.Println(tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Token secret (default: UPLOAD_TOKEN_SECRET)")

	return cmd
}

// NewTokenDecryptCommand creates the token decrypt command
func NewTokenDecryptCommand() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "decrypt <token>",
		Short: "Decrypt a token back into its plaintext",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSecret(secret)
			if err != nil {
				return err
			}

			plaintext, err := token.Decrypt(args[0], []byte(s))
			if err != nil {
				return fmt.Errorf("decrypt failed: %w", err)
			}

			fmt.Println(plaintext)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Token secret (default: UPLOAD_TOKEN_SECRET)")

	return cmd
}

// resolveSecret picks the token secret: the --secret flag when set,
// otherwise the environment.
func resolveSecret(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	cfg, err := config.Load(config.WithEnv("UPLOAD_"))
	if err != nil {
		return "", fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.TokenSecret == "" {
		return "", errors.New("token secret is required: pass --secret or set UPLOAD_TOKEN_SECRET")
	}
	return cfg.TokenSecret, nil
}

// NewAuditCommand creates the audit command
func NewAuditCommand() *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent probe outcomes from the audit store",
		Long: `List recent probe outcomes from the configured audit store, newest
first. An in-memory store only holds entries recorded by this process,
so this command is mostly useful with a postgres DATABASE_URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.WithEnv("UPLOAD_"))
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			ctx := cmd.Context()
			recorder, err := cfg.BuildRecorder(ctx)
			if err != nil {
				return fmt.Errorf("building audit recorder: %w", err)
			}

			entries, err := recorder.ListRecent(ctx, limit)
			if err != nil {
				return fmt.Errorf("list failed: %w", err)
			}

			if asJSON {
				return printJSON(entries)
			}

			fmt.Printf("Entries: %d\n\n", len(entries))
			for i, e := range entries {
				fmt.Printf("%d. [%s] %s\n", i+1, e.Status, e.URL)
				fmt.Printf("   Scheme: %s\n", e.Scheme)
				if e.ContentType != "" {
					fmt.Printf("   Content-Type: %s\n", e.ContentType)
				}
				if e.Size >= 0 {
					fmt.Printf("   Size: %d\n", e.Size)
				}
				if e.Detail != "" {
					fmt.Printf("   Detail: %s\n", e.Detail)
				}
				fmt.Printf("   Recorded: %s\n", e.CreatedAt.Format(time.RFC3339))
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to return")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")

	return cmd
}

func printJSON(v any) error {
	raw, err := utils.MarshalSafe(v)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}

	fmt.Println(buf.String())
	return nil
}
