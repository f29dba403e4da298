// cmd/cdmec/main.go
package main

import (
	"cdmec/internal/app"
	"cdmec/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
