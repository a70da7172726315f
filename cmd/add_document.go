/*
Copyright © 2025 tranvd
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tranvd/ragchat-be/database"
	"github.com/tranvd/ragchat-be/repository"
	"github.com/tranvd/ragchat-be/service"
	"github.com/tranvd/ragchat-be/types"
)

// addDocumentCmd represents the add-document command
var addDocumentCmd = &cobra.Command{
	Use:   "add-document [files...]",
	Short: "Add text files to the persisted document store",
	Long: `Reads one or more text files, runs them through the file processor
and stores them as documents in the persisted collection. Files that
fail to process are reported without aborting the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mongoURI, _ := cmd.Flags().GetString("mongo-uri")
		source, _ := cmd.Flags().GetString("source")
		if mongoURI == "" {
			mongoURI = os.Getenv("MONGODB_URI")
		}

		mongoClient, err := database.NewMongoClient(context.Background(), mongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		docRepo := repository.NewDocumentRepo(mongoClient.Database("ragchat").Collection("documents"))
		if err := docRepo.EnsureIndexes(context.Background()); err != nil {
			log.Fatalf("Failed to create document indexes: %v", err)
		}

		store, err := service.NewRAGStore(types.DefaultRAGConfig, service.NewHashingEmbedder())
		if err != nil {
			log.Fatalf("Failed to create document store: %v", err)
		}
		store.AttachPersistence(docRepo)
		if err := store.LoadPersisted(context.Background()); err != nil {
			log.Fatalf("Failed to load persisted documents: %v", err)
		}

		fileService := service.NewFileService()
		uploads := make([]types.FileUpload, 0, len(args))
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
				continue
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
				continue
			}
			uploads = append(uploads, types.FileUpload{
				Name:   filepath.Base(path),
				Size:   info.Size(),
				Reader: f,
			})
		}

		attachments, failures := fileService.ProcessFiles(uploads)
		for _, failure := range failures {
			fmt.Fprintf(os.Stderr, "Failed: %v\n", failure)
		}
		for _, attachment := range attachments {
			text, ok := attachment.(types.TextAttachment)
			if !ok {
				fmt.Fprintf(os.Stderr, "Skipping %s: not a text file\n", attachment.FileName())
				continue
			}
			title := strings.TrimSuffix(text.Name, filepath.Ext(text.Name))
			id := store.AddDocument(context.Background(), title, text.Content, types.DocumentMetadata{
				Source: source,
				Type:   "file",
			})
			fmt.Printf("Added document %s (%s)\n", id, text.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(addDocumentCmd)

	addDocumentCmd.Flags().StringP("mongo-uri", "m", "", "MongoDB connection URI (defaults to MONGODB_URI)")
	addDocumentCmd.Flags().StringP("source", "s", "cli", "Source label stored in document metadata")
}
