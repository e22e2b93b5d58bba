// Command hash-password prints a bcrypt hash for an ADMIN_ACCOUNTS entry.
//
//	hash-password 's3cret'
//	echo 's3cret' | hash-password
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/LangApex/alumni-platform/internal/config"
	"github.com/LangApex/alumni-platform/internal/session"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			config.Exitf("hash-password: read password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" {
		config.Exitf("usage: hash-password <password>")
	}

	hash, err := session.HashPassword(password)
	if err != nil {
		config.Exitf("hash-password: %v", err)
	}
	fmt.Println(hash)
}
