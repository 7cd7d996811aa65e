package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/moodtrace-backend/internal/app"
	"github.com/yungbote/moodtrace-backend/internal/platform/envutil"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Close(ctx)
	}()

	addr := ":" + envutil.Str("PORT", "8080")
	a.Log.Info("Starting server", "addr", addr)
	if err := a.Router.Run(addr); err != nil {
		a.Log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
