package main

import (
	"context"
	"fmt"
	"time"

	"emb-site/internal/domain/content"
	"emb-site/internal/domain/settings"
	"emb-site/internal/infra/pgstore"
	"emb-site/internal/infra/rendercache"
	"emb-site/internal/infra/sanitize"
	"emb-site/internal/logger"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var siteName string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default pages and general settings when missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pages := content.NewService(pgstore.NewPages(db), pgstore.NewSections(db),
				rendercache.New(time.Minute),
				content.Cleaners{Text: sanitize.Plain, HTML: sanitize.Rich}, logger.Log)
			st := settings.NewService(pgstore.NewSettings(db))

			for _, p := range defaultPages() {
				created, err := pages.Seed(ctx, p)
				if err != nil {
					return fmt.Errorf("seed %s: %w", p.Slug, err)
				}
				if created {
					fmt.Println(okStyle.Render("created"), p.Slug)
				} else {
					fmt.Println(skipStyle.Render("exists "), p.Slug)
				}
			}
			return seedGeneral(ctx, st, siteName)
		},
	}
	cmd.Flags().StringVar(&siteName, "site-name", "Escuela de Música", "Site name used when settings are empty")
	return cmd
}

// defaultPages is one page per category with the sections its route needs.
func defaultPages() []*content.Page {
	page := func(slug string, cat content.Category, title string, types ...content.Type) *content.Page {
		entries := make(content.Entries, 0, len(types))
		for _, t := range types {
			entries = append(entries, content.Inline(content.New("", t)))
		}
		return &content.Page{Slug: slug, Category: cat, HeaderTitle: title, MetaTitle: title, Sections: entries}
	}
	return []*content.Page{
		page(content.HomeSlug, content.CategoryHome, "Inicio",
			content.TypeHero, content.TypeClasses, content.TypeNews, content.TypeContact),
		page("clases", content.CategoryClasses, "Clases",
			content.TypeHeader, content.TypeClasses, content.TypeContact),
		page("noticias", content.CategoryNews, "Noticias",
			content.TypeHeader, content.TypeNews),
		page("galeria", content.CategoryGallery, "Galería",
			content.TypeHeader),
		page("contacto", content.CategoryContact, "Contacto",
			content.TypeHeader, content.TypeContact),
		page("donaciones", content.CategoryDonations, "Donaciones",
			content.TypeHeader, content.TypeDonations, content.TypeDonationSuccess),
	}
}

type generalStore interface {
	General(ctx context.Context) (settings.General, error)
	SaveGeneral(ctx context.Context, g settings.General) error
}

func seedGeneral(ctx context.Context, st generalStore, siteName string) error {
	g, err := st.General(ctx)
	if err != nil {
		return err
	}
	if g.SiteName != "" {
		fmt.Println(skipStyle.Render("exists "), "settings/general")
		return nil
	}
	g.SiteName = siteName
	g.MetaTitle = siteName
	if err := st.SaveGeneral(ctx, g); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("created"), "settings/general")
	return nil
}
