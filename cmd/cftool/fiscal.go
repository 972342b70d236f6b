package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/optoclinic-api/internal/fiscalcode"
)

var errInvalidCodes = errors.New("one or more fiscal codes are invalid")

func newGenerateCommand() *cobra.Command {
	var (
		surname, name, birthDate, sex string
		municipality, province        string
		tablePath, encoding           string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fiscal code from personal data",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := fiscalcode.LoadCadastralTable(tablePath, fiscalcode.LoadOptions{Encoding: encoding})
			if err != nil {
				return fmt.Errorf("failed to load cadastral table: %w", err)
			}

			code, err := fiscalcode.NewEngine(table).GenerateFromText(surname, name, birthDate, sex, municipality, province)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&surname, "surname", "", "surname")
	flags.StringVar(&name, "name", "", "given name")
	flags.StringVar(&birthDate, "birth-date", "", "birth date as d/m/yyyy")
	flags.StringVar(&sex, "sex", "", "M or F")
	flags.StringVar(&municipality, "municipality", "", "birth municipality")
	flags.StringVar(&province, "province", "", "birth province code")
	flags.StringVar(&tablePath, "table", "data/comuni.csv", "cadastral table path")
	flags.StringVar(&encoding, "encoding", fiscalcode.EncodingUTF8, "cadastral table encoding")

	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate CODE...",
		Short: "Check fiscal code check characters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, code := range args {
				status := "valid"
				if !fiscalcode.Validate(code) {
					status = "invalid"
					failed = true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, status)
			}
			if failed {
				return errInvalidCodes
			}
			return nil
		},
	}
}

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode CODE",
		Short: "Extract the fields encoded in a fiscal code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := fiscalcode.Decode(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(decoded)
		},
	}
}
