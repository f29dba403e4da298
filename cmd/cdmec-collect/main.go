// cmd/cdmec-collect/main.go
package main

import (
	"cdmec/internal/appshell"
	"cdmec/internal/collectapp"
)

func main() { appshell.Main(collectapp.RunContext) }
