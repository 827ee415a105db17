package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/client"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/viewmodel"
)

var (
	snapshotURL   string
	snapshotToken string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Load a running portfolio through its API and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(snapshotURL, client.WithToken(snapshotToken))
		caps := content.Visitor
		if snapshotToken != "" {
			caps = content.Capabilities{Owner: true}
		}
		snap, err := viewmodel.Load(cmd.Context(), c, caps)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snapshotView(snap))
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotURL, "url", "http://localhost:3000", "base URL of the server")
	snapshotCmd.Flags().StringVar(&snapshotToken, "token", "", "bearer token (optional)")
}

type snapshotJSON struct {
	Profile           *content.Profile         `json:"profile"`
	ResearchInterests []string                 `json:"researchInterests"`
	About             []content.AboutParagraph `json:"about"`
	Education         []content.Education      `json:"education"`
	Experience        []content.Experience     `json:"experience"`
	Publications      []content.Publication    `json:"publications"`
	Featured          []content.Publication    `json:"featuredPublications"`
	News              []content.NewsItem       `json:"news"`
	RecentNews        []content.NewsItem       `json:"recentNews"`
}

func snapshotView(s *viewmodel.Snapshot) snapshotJSON {
	return snapshotJSON{
		Profile:           s.Profile,
		ResearchInterests: s.ResearchInterests(),
		About:             s.About,
		Education:         s.Education,
		Experience:        s.Experience,
		Publications:      s.Publications,
		Featured:          s.FeaturedPublications(),
		News:              s.News,
		RecentNews:        s.RecentNews(),
	}
}
