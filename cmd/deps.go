package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/api"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

// deps bundles what most commands need: the local store, the request
// client logging into it, and the assessment service on top.
type deps struct {
	store   *store.Store
	events  store.EventRepo
	client  *api.Client
	service *assessment.Service
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := api.ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("api config: %w", err)
	}
	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	events := st.EventRepo()
	client := api.New(cfg, events, nil)
	return &deps{
		store:   st,
		events:  events,
		client:  client,
		service: assessment.NewService(client),
	}, nil
}

func (d *deps) Close() error {
	return d.store.Close()
}
