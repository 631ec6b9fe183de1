// Copyright (C) 2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/dataentry/config"
	"github.com/cardinalhq/dataentry/internal/console"
	"github.com/cardinalhq/dataentry/internal/filematch"
	"github.com/cardinalhq/dataentry/internal/sequence"
	"github.com/cardinalhq/dataentry/internal/sequenceclient"
	"github.com/cardinalhq/dataentry/internal/upload"
)

// newMatcher resolves file patterns for sequence-upload. Relative
// patterns are resolved against the working directory.
var newMatcher = func() upload.Matcher { return filematch.New("") }

type sequenceUploadOptions struct {
	output string
	upload sequence.UploadOptions
}

func newSequenceUploadCmd(g *globalOptions) *cobra.Command {
	opts := &sequenceUploadOptions{}

	c := &cobra.Command{
		Use:   "sequence-upload <FILENAME_PATTERN> <BASEURL>",
		Short: "Upload sequence records from CSV files",
		Long: `Reads every CSV file matching FILENAME_PATTERN, uploads the records to
the sequence API at BASEURL and writes the per-record report as CSV to
the --output file.

The client id and secret may also be given as DE_CLIENT_ID and
DE_CLIENT_SECRET, or in a de.yaml config file.`,
		Example: `  de sequence-upload "./data/*.csv" https://example.com --client-id X --client-secret Y -o ./report.csv`,
		Args:    exactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runSequenceUpload(c, g, opts, args[0], args[1])
		},
	}

	c.Flags().BoolVarP(&opts.upload.DryRun, "dryrun", "n", false, "Validate the upload on the server without storing anything")
	c.Flags().BoolVarP(&opts.upload.Truncate, "truncate", "t", false, "Remove existing sequence records before storing these")
	c.Flags().BoolVarP(&opts.upload.StopOnError, "stop-on-error", "s", false, "Ask the server to stop at the first rejected record")
	c.Flags().StringVarP(&opts.output, "output", "o", "", "Path of the CSV report file (required)")
	c.Flags().String("client-id", "", "API client id (required, or DE_CLIENT_ID)")
	c.Flags().String("client-secret", "", "API client secret (required, or DE_CLIENT_SECRET)")
	c.Flags().Duration("timeout", 0, "HTTP request timeout (default 5m)")
	c.Flags().String("credentials-mode", "", `How credentials are sent: "header", "query" or "basic" (default "header")`)

	return c
}

func runSequenceUpload(c *cobra.Command, g *globalOptions, opts *sequenceUploadOptions, pattern, baseURL string) error {
	cfg, err := config.Load(c.Flags())
	if err != nil {
		return err
	}

	params := upload.Params{
		Pattern:      pattern,
		BaseURL:      baseURL,
		Output:       opts.output,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Options:      opts.upload,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	creds, err := sequenceclient.NewCredentials(cfg.Credentials.Mode,
		cfg.ClientID, cfg.ClientSecret, cfg.Credentials.IDName, cfg.Credentials.SecretName)
	if err != nil {
		return &upload.ValidationError{Argument: "--credentials-mode", Reason: err.Error()}
	}

	logger := console.NewLogger(g.stdout, g.stderr, g.logConfig())
	logger.Info(fmt.Sprintf("Data entry toolbox %s", buildVersion()))

	client, err := sequenceclient.New(params.BaseURL,
		sequenceclient.WithCredentials(creds),
		sequenceclient.WithTimeout(cfg.Timeout),
		sequenceclient.WithUserAgent("de/"+buildVersion()),
		sequenceclient.WithLogger(logger),
	)
	if err != nil {
		return &upload.ValidationError{Argument: upload.ArgBaseURL, Reason: err.Error()}
	}

	runner := &upload.Runner{
		Matcher:  newMatcher(),
		Uploader: client,
		Logger:   logger,
	}
	res, err := runner.Run(c.Context(), params)
	if err != nil {
		return err
	}
	logger.Debug("Upload finished", slog.Int("files", len(res.Files)), slog.Int("records", res.Records))
	return nil
}

// exactArgs is cobra.ExactArgs reported as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if len(args) != n {
			return &upload.ValidationError{
				Argument: c.CommandPath(),
				Reason:   fmt.Sprintf("accepts %d arg(s), received %d", n, len(args)),
			}
		}
		return nil
	}
}
