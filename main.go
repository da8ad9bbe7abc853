/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/DayWing/cmd"
	"github.com/josephgoksu/DayWing/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
