package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/app"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/keyfile"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// Default key directory and output file suffixes
const (
	DefaultKeyDir       = "./keys"
	EncryptedFileSuffix = ".encrypted"
	DecryptedFileSuffix = ".decrypted"
)

// RSACommandHandler encapsulates logic for handling textbook RSA operations via CLI.
type RSACommandHandler struct {
	service keys.FileCipherService
	store   *keyfile.FileKeyStore
	logger  logger.Logger
}

// NewRSACommandHandler initializes a new RSACommandHandler with logging and a file cipher service
// using the given framing and key file naming.
func NewRSACommandHandler(verbose bool, framing string, naming keyfile.KeyNaming) (*RSACommandHandler, error) {
	loggerInstance, err := setupLogger(verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	settings := config.DefaultKeySettings()
	settings.Framing = framing

	engine, err := app.NewEngine(settings, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	store, err := keyfile.NewFileKeyStore(naming, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create key store: %w", err)
	}

	service, err := app.NewFileCipherService(engine, store, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create file cipher service: %w", err)
	}

	return &RSACommandHandler{
		service: service,
		store:   store,
		logger:  loggerInstance,
	}, nil
}

func handlerFor(cmd *cobra.Command) (*RSACommandHandler, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("invalid verbose flag: %w", err)
	}

	framing := config.FramingMarker
	if cmd.Flags().Lookup("legacy-framing") != nil {
		legacy, err := cmd.Flags().GetBool("legacy-framing")
		if err != nil {
			return nil, fmt.Errorf("invalid legacy-framing flag: %w", err)
		}
		if legacy {
			framing = config.FramingLegacy
		}
	}

	naming := keyfile.KeyNamingConventional
	legacyNames, err := cmd.Flags().GetBool("legacy-key-names")
	if err != nil {
		return nil, fmt.Errorf("invalid legacy-key-names flag: %w", err)
	}
	if legacyNames {
		naming = keyfile.KeyNamingLegacy
	}

	return NewRSACommandHandler(verbose, framing, naming)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc, error) {
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid timeout flag: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		ctx, cancel := context.WithCancel(ctx)
		return ctx, cancel, nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, nil
}

// GenerateKeysCmd generates a key pair and writes key_public.txt and key_private.txt into the key directory
func (commandHandler *RSACommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return fmt.Errorf("invalid key-size flag: %w", err)
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}

	ctx, cancel, err := commandContext(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	commandHandler.logger.Debug("Key size: ", keySize)
	commandHandler.logKeyPaths(keyDir)

	started := time.Now()
	pair, err := commandHandler.service.GenerateToDir(ctx, keySize, keyDir)
	if err != nil {
		return err
	}

	commandHandler.logger.Info(fmt.Sprintf("Generated %d-bit key pair (%d-bit modulus) in %s into %s",
		keySize, pair.Modulus.BitLen(), time.Since(started).Round(time.Millisecond), keyDir))
	return nil
}

// EncryptCmd encrypts a file with the public key of the key directory
func (commandHandler *RSACommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	inputFile, outputFile, keyDir, err := fileFlags(cmd)
	if err != nil {
		return err
	}
	if outputFile == "" {
		outputFile = inputFile + EncryptedFileSuffix
	}

	ctx, cancel, err := commandContext(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	commandHandler.logFilePaths(inputFile, outputFile, keyDir)

	stats, err := commandHandler.service.EncryptFile(ctx, inputFile, outputFile, keyDir)
	if err != nil {
		return err
	}

	commandHandler.logger.Info(fmt.Sprintf("Encrypted %d bytes into %d blocks at %s", stats.BytesIn, stats.Blocks, outputFile))
	return nil
}

// DecryptCmd decrypts a file with the private key of the key directory
func (commandHandler *RSACommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	inputFile, outputFile, keyDir, err := fileFlags(cmd)
	if err != nil {
		return err
	}
	if outputFile == "" {
		outputFile = DefaultDecryptedPath(inputFile)
	}

	ctx, cancel, err := commandContext(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	commandHandler.logFilePaths(inputFile, outputFile, keyDir)

	stats, err := commandHandler.service.DecryptFile(ctx, inputFile, outputFile, keyDir)
	if err != nil {
		return err
	}

	commandHandler.logger.Info(fmt.Sprintf("Decrypted %d blocks into %d bytes at %s", stats.Blocks, stats.BytesOut, outputFile))
	return nil
}

// DefaultDecryptedPath drops a trailing .encrypted from inputFile and appends .decrypted
func DefaultDecryptedPath(inputFile string) string {
	return strings.TrimSuffix(inputFile, EncryptedFileSuffix) + DecryptedFileSuffix
}

func (commandHandler *RSACommandHandler) logFilePaths(inputFile, outputFile, keyDir string) {
	commandHandler.logger.Debug("Input file path: ", inputFile)
	commandHandler.logger.Debug("Output file path: ", outputFile)
	commandHandler.logKeyPaths(keyDir)
}

func (commandHandler *RSACommandHandler) logKeyPaths(keyDir string) {
	commandHandler.logger.Debug("Private key path: ", commandHandler.store.DecryptionKeyPath(keyDir))
	commandHandler.logger.Debug("Public key path: ", commandHandler.store.EncryptionKeyPath(keyDir))
}

func fileFlags(cmd *cobra.Command) (inputFile, outputFile, keyDir string, err error) {
	if inputFile, err = cmd.Flags().GetString("input-file"); err != nil {
		return "", "", "", fmt.Errorf("invalid input-file flag: %w", err)
	}
	if outputFile, err = cmd.Flags().GetString("output-file"); err != nil {
		return "", "", "", fmt.Errorf("invalid output-file flag: %w", err)
	}
	if keyDir, err = cmd.Flags().GetString("key-dir"); err != nil {
		return "", "", "", fmt.Errorf("invalid key-dir flag: %w", err)
	}
	return inputFile, outputFile, keyDir, nil
}

// runWithHandler builds the handler once flags are parsed, so --verbose selects the log level
func runWithHandler(run func(*RSACommandHandler, *cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		handler, err := handlerFor(cmd)
		if err != nil {
			return err
		}
		return run(handler, cmd, args)
	}
}

func addLegacyKeyNamesFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("legacy-key-names", false, "Use the legacy key directory layout: e in key_private.txt, d in key_public.txt")
}

// InitRSACommands registers the textbook RSA commands
func InitRSACommands(rootCmd *cobra.Command) error {
	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate a textbook RSA key pair",
		Args:  cobra.NoArgs,
		RunE:  runWithHandler((*RSACommandHandler).GenerateKeysCmd),
	}
	generateKeysCmd.Flags().IntP("key-size", "k", 0, "Key size in bits (16 to 16384)")
	generateKeysCmd.Flags().StringP("key-dir", "d", DefaultKeyDir, "Directory to store key_public.txt and key_private.txt")
	generateKeysCmd.Flags().Duration("timeout", 0, "Abort key generation after this duration (0 waits indefinitely)")
	addLegacyKeyNamesFlag(generateKeysCmd)
	if err := generateKeysCmd.MarkFlagRequired("key-size"); err != nil {
		return fmt.Errorf("failed to mark key-size as required: %w", err)
	}
	rootCmd.AddCommand(generateKeysCmd)

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file with the public key",
		Args:  cobra.NoArgs,
		RunE:  runWithHandler((*RSACommandHandler).EncryptCmd),
	}
	encryptCmd.Flags().StringP("input-file", "i", "", "Path to input file which needs to be encrypted")
	encryptCmd.Flags().StringP("output-file", "o", "", "Path to encrypted output file (default <input-file>.encrypted)")
	rootCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file with the private key",
		Args:  cobra.NoArgs,
		RunE:  runWithHandler((*RSACommandHandler).DecryptCmd),
	}
	decryptCmd.Flags().StringP("input-file", "i", "", "Path to encrypted file")
	decryptCmd.Flags().StringP("output-file", "o", "", "Path to decrypted output file (default <input-file> without .encrypted, plus .decrypted)")
	rootCmd.AddCommand(decryptCmd)

	for _, cmd := range []*cobra.Command{encryptCmd, decryptCmd} {
		cmd.Flags().StringP("key-dir", "d", DefaultKeyDir, "Directory holding key_public.txt and key_private.txt")
		cmd.Flags().Bool("legacy-framing", false, "Write and read the unframed format, which zero pads the last decrypted block")
		addLegacyKeyNamesFlag(cmd)
		cmd.Flags().Duration("timeout", 0, "Abort after this duration (0 waits indefinitely)")
		if err := cmd.MarkFlagRequired("input-file"); err != nil {
			return fmt.Errorf("failed to mark input-file as required: %w", err)
		}
	}

	return nil
}
