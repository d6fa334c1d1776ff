package cli

import (
	"fmt"

	"github.com/diillson/aws-billing-dashboard-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner prints the startup banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
     _  __        ______ _____  _ _ _ _
    / \ \ \      / / ___| | _ )(_) | (_)_ __   __ _
   / _ \ \ \ /\ / /\___ \ | _ \| | | | | '_ \ / _' |
  / ___ \ \ V  V /  ___) || |_) | | | | | | | | (_| |
 /_/   \_\ \_/\_/  |____/ |____/|_|_|_|_|_| |_|\__, |
                                               |___/
        `
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(yellow(banner))
	fmt.Println(blue(fmt.Sprintf("AWS Billing Dashboard (v%s)", version.FormatVersion())))
}
