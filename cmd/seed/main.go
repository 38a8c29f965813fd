package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/platform/libraryclient"
)

func main() {
	config.LoadEnvFiles()

	baseURL := flag.String("url", envOr("SEED_API_URL", "http://localhost:8080"), "base URL of the library API")
	username := flag.String("user", envOr("SEED_USER", "admin"), "login username")
	count := flag.Int("count", 20, "number of generated books added after the classics")
	rps := flag.Int("rps", 20, "maximum requests per second")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		logger.Error("missing required environment variable: SEED_PASSWORD")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := libraryclient.NewClient(*baseURL, "libraryapi-seed/1.0", *rps, 3)
	if err := run(ctx, logger, client, *username, password, *count); err != nil {
		logger.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, client *libraryclient.Client, username, password string, count int) error {
	if _, err := client.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	books := append(classics(), generate(rng, count)...)
	logger.Info("seeding books", slog.Int("count", len(books)))

	for i, f := range books {
		b, err := client.CreateBook(ctx, f)
		if err != nil {
			var apiErr *libraryclient.APIError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnprocessableEntity {
				logger.Warn("book rejected", slog.String("title", f.Title), slog.String("reason", apiErr.Message))
				continue
			}
			return fmt.Errorf("create %q: %w", f.Title, err)
		}
		if (i+1)%10 == 0 || i+1 == len(books) {
			logger.Info("progress", slog.Int("created", i+1), slog.Int64("last_id", b.ID))
		}
	}

	_, meta, err := client.ListBooks(ctx, url.Values{"limit": {"1"}})
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	logger.Info("seed complete", slog.Int("total_books", meta.Total))
	return nil
}

func classics() []book.Fields {
	return []book.Fields{
		newFields("1984", "George Orwell", 1949, "Dystopia", "978-0451524935"),
		newFields("Animal Farm", "George Orwell", 1945, "Satire", "978-0451526342"),
		newFields("Brave New World", "Aldous Huxley", 1932, "Dystopia", "978-0060850524"),
		newFields("Fahrenheit 451", "Ray Bradbury", 1953, "Dystopia", "978-1451673319"),
		newFields("The Hobbit", "J.R.R. Tolkien", 1937, "Fantasy", "978-0547928227"),
		newFields("Dune", "Frank Herbert", 1965, "Science Fiction", "978-0441013593"),
		newFields("Pride and Prejudice", "Jane Austen", 1813, "Romance", "978-0141439518"),
		newFields("The Great Gatsby", "F. Scott Fitzgerald", 1925, "Fiction", "978-0743273565"),
	}
}

var (
	genres  = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	authors = []string{"Ada Lovelace", "Italo Calvino", "Ursula K. Le Guin", "Jorge Luis Borges", "Octavia Butler", "Stanislaw Lem"}
)

func generate(rng *rand.Rand, count int) []book.Fields {
	out := make([]book.Fields, 0, count)
	for i := 0; i < count; i++ {
		title := fmt.Sprintf("The %s of %s", getRandomWord(rng), getRandomWord(rng))
		isbn := fmt.Sprintf("979-%010d", rng.Int63n(1e10))
		out = append(out, newFields(
			title,
			authors[rng.Intn(len(authors))],
			1950+rng.Intn(75),
			genres[rng.Intn(len(genres))],
			isbn,
		))
	}
	return out
}

func newFields(title, author string, year int, genre, isbn string) book.Fields {
	return book.Fields{Title: title, Author: author, Year: &year, Genre: &genre, ISBN: &isbn}
}

func getRandomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
