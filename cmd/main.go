// @title BizTime API
// @version 1.0
// @description Companies, invoices and industries.
// @BasePath /
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jeremiahbrem/biztime/internal/app"
)

func main() {
	ctx := context.Background()
	application, err := app.New(ctx)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		application.Log.Error("Server failed", "error", err)
		application.Close()
		os.Exit(1)
	}
}
