// Command hashpw prints a bcrypt hash for a password, for seeding the
// first admin account.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: hashpw <password>")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), 12)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	fmt.Println(string(hash))
}
