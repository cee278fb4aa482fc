// The feed command is a terminal client for the news API: it loads the feed
// on start and then takes simple commands to refresh, filter by category,
// or seed sample data when the store is empty.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/feedview"
	"newsbrief/internal/observability/logging"
	"newsbrief/pkg/config"
)

func main() {
	logger := logging.NewTextLogger()

	api := feedview.NewAPIClient("")
	limit := config.GetEnvInt("NEWS_FEED_LIMIT", 20)
	client := feedview.NewClient(api, limit, logger)

	ctx := context.Background()
	client.Load(ctx)
	render(client)

	scanner := bufio.NewScanner(os.Stdin)
	printHelp()
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "q", "quit":
			return
		case "", "r", "refresh":
			client.Refresh(ctx)
			render(client)
		case "c", "category":
			category := strings.TrimSpace(arg)
			if category == "" {
				fmt.Println("categories: all,", strings.Join(entity.Categories, ", "))
				continue
			}
			client.SelectCategory(ctx, category)
			render(client)
		case "s", "seed":
			if !client.CanSeed() {
				fmt.Println("seed is only offered on an empty feed")
				continue
			}
			if err := client.SeedAndReload(ctx); err != nil {
				fmt.Println("seed failed, see logs")
			}
			render(client)
		case "h", "help":
			printHelp()
		default:
			fmt.Printf("unknown command %q (try: help)\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Println("commands: r(efresh), c(ategory) <name>, s(eed), h(elp), q(uit)")
}

func render(client *feedview.Client) {
	state := client.Snapshot()
	now := time.Now()

	fmt.Printf("\n=== newsbrief [%s] %d items ===\n\n",
		feedview.CategoryLabel(state.SelectedCategory), len(state.Items))

	if state.Err != "" {
		fmt.Printf("error: %s\n\n", state.Err)
	}

	for _, item := range state.Items {
		fmt.Println(feedview.BuildCard(item, now).Render())
	}

	if len(state.Items) == 0 && state.Err == "" {
		fmt.Println("no news yet; type 's' to load sample news")
	}
}
