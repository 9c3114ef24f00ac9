package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Authenticate against the API and store the token",
	Args:  cobra.ExactArgs(1),
	Run:   runLogin,
}

func runLogin(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		exitError("failed to read password: %v", err)
	}

	token, err := c.Client.Login(cmd.Context(), args[0], string(password))
	if err != nil {
		exitError("%v", err)
	}

	c.Config.Token = token
	if err := c.Config.Save(); err != nil {
		exitError("failed to save token: %v", err)
	}

	fmt.Println("Logged in.")
}
