// cmd/cdmec-signature/main.go
package main

import (
	"cdmec/internal/appshell"
	"cdmec/internal/signatureapp"
)

func main() { appshell.Main(signatureapp.RunContext) }
