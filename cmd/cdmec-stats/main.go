// cmd/cdmec-stats/main.go
package main

import (
	"cdmec/internal/appshell"
	"cdmec/internal/statsapp"
)

func main() { appshell.Main(statsapp.RunContext) }
