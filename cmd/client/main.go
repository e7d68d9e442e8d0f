package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ilyakh/ShopKeeper/internal/client/api"
	"github.com/ilyakh/ShopKeeper/internal/client/credstore"
	"github.com/ilyakh/ShopKeeper/internal/client/session"
	"github.com/ilyakh/ShopKeeper/internal/models"
)

// serviceName is the fixed namespace under which credentials are stored.
const serviceName = "ShopKeeper"

// keyFile holds the locally generated secret the credential store is
// sealed with.
const keyFile = "credstore.key"

var (
	version   string
	buildDate string
)

// loadOrCreateKey returns the store secret from dir, generating one on
// first run.
func loadOrCreateKey(dir string) ([]byte, error) {
	path := filepath.Join(dir, keyFile)
	if key, err := os.ReadFile(path); err == nil {
		return key, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0600); err != nil {
		return nil, err
	}
	return key, nil
}

// promptLine prints a prompt and reads one trimmed line from scanner.
func promptLine(scanner *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// promptPassword reads a password from the terminal without echo.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// promptProduct reads product fields for add/edit commands.
func promptProduct(scanner *bufio.Scanner) (models.Product, error) {
	name := promptLine(scanner, "Name: ")
	priceStr := promptLine(scanner, "Price (minor units): ")
	price, err := strconv.ParseInt(priceStr, 10, 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid price %q", priceStr)
	}
	description := promptLine(scanner, "Description: ")
	return models.Product{Name: name, Price: price, Description: description}, nil
}

// repl runs the interactive shell loop, accepting commands to manage the
// catalog and the local session.
func repl(client *api.Client) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("shopkeeper> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		ctx := context.Background()

		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register, login, whoami, list, get <id>, add, edit <id>, delete <id>, logout, exit")
		case "register":
			username := promptLine(scanner, "Username: ")
			email := promptLine(scanner, "Email: ")
			password, err := promptPassword()
			if err != nil {
				fmt.Println("failed to read password:", err)
				continue
			}
			resp, err := client.Register(ctx, models.RegistrationRequest{
				Username: username,
				Password: password,
				Email:    email,
				// Placeholder value the server ignores.
				SecretResponse: "secret",
			})
			if err != nil {
				fmt.Println("registration failed:", err)
				continue
			}
			fmt.Printf("Registered as %s (id %d)\n", username, resp.ID)
		case "login":
			username := promptLine(scanner, "Username: ")
			password, err := promptPassword()
			if err != nil {
				fmt.Println("failed to read password:", err)
				continue
			}
			resp, err := client.Login(ctx, models.LoginRequest{Username: username, Password: password})
			if err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Printf("Logged in as %s (id %d)\n", username, resp.ID)
		case "whoami":
			user, err := client.CurrentUser()
			if err != nil {
				fmt.Println("failed to read session:", err)
				continue
			}
			if user == nil {
				fmt.Println("Not logged in")
			} else {
				fmt.Printf("%s (id %d)\n", user.Name, user.ID)
			}
		case "list":
			products, err := client.Products(ctx)
			if err != nil {
				fmt.Println("list failed:", err)
				continue
			}
			for _, p := range products {
				fmt.Printf("%d\t%s\t%d\t%s\n", p.ID, p.Name, p.Price, p.Description)
			}
		case "get":
			if len(args) < 2 {
				fmt.Println("Usage: get <id>")
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmt.Println("invalid id:", args[1])
				continue
			}
			product, err := client.Product(ctx, id)
			if err != nil {
				fmt.Println("get failed:", err)
				continue
			}
			b, _ := json.MarshalIndent(product, "", "  ")
			fmt.Println(string(b))
		case "add":
			product, err := promptProduct(scanner)
			if err != nil {
				fmt.Println(err)
				continue
			}
			created, err := client.CreateProduct(ctx, product)
			if err != nil {
				fmt.Println("create failed:", err)
				continue
			}
			fmt.Printf("Created product %d\n", created.ID)
		case "edit":
			if len(args) < 2 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmt.Println("invalid id:", args[1])
				continue
			}
			product, err := promptProduct(scanner)
			if err != nil {
				fmt.Println(err)
				continue
			}
			product.ID = id
			updated, err := client.UpdateProduct(ctx, product)
			if err != nil {
				fmt.Println("update failed:", err)
				continue
			}
			fmt.Printf("Updated product %d\n", updated.ID)
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmt.Println("invalid id:", args[1])
				continue
			}
			if err := client.DeleteProduct(ctx, id); err != nil {
				fmt.Println("delete failed:", err)
				continue
			}
			fmt.Println("Product deleted")
		case "logout":
			if err := client.Logout(); err != nil {
				fmt.Println("logout failed:", err)
				continue
			}
			fmt.Println("Logged out")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags, opens the local stores, and starts the shell.
func main() {
	var (
		baseURL string
		dataDir string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&dataDir, "data", ".", "directory for local stores")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("ShopKeeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	key, err := loadOrCreateKey(dataDir)
	if err != nil {
		log.Fatal(err)
	}
	aead, err := credstore.NewAEADFromSecret(key)
	if err != nil {
		log.Fatal(err)
	}
	creds, err := credstore.Open(dataDir, serviceName, aead)
	if err != nil {
		log.Fatal(err)
	}
	sessions, err := session.Open(dataDir)
	if err != nil {
		log.Fatal(err)
	}

	client := api.New(baseURL, creds, sessions, zap.NewNop())
	repl(client)
}
