// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package loader assembles the export tree from the 1Password CLI.
package loader

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/toeirei/opexport/internal/logging"
	"github.com/toeirei/opexport/internal/model"
	"github.com/toeirei/opexport/internal/op"
	"golang.org/x/sync/errgroup"
)

// Source is the subset of the op client the loader needs. *op.Client
// implements it.
type Source interface {
	ListAccounts(ctx context.Context) ([]op.ListedAccount, error)
	GetAccount(ctx context.Context, id string) (op.Account, error)
	ListVaults(ctx context.Context, account string) ([]op.ListedVault, error)
	GetVault(ctx context.Context, account, id string) (op.Vault, error)
	ListItems(ctx context.Context, account string) ([]op.ListedItem, error)
	GetItem(ctx context.Context, account, id string) (op.Item, error)
}

var _ Source = (*op.Client)(nil)

// Progress is called after every fetched item with the number of items
// fetched so far and the number known so far. It may be called from several
// goroutines at once.
type Progress func(done, total int)

// DefaultConcurrency bounds parallel item fetches when none is configured.
const DefaultConcurrency = 4

// Loader fetches every account, vault and item visible to the CLI.
type Loader struct {
	src         Source
	concurrency int
	progress    Progress

	done  atomic.Int64
	total atomic.Int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithConcurrency sets how many item fetches run at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(p Progress) Option {
	return func(l *Loader) { l.progress = p }
}

// New returns a Loader reading from src.
func New(src Source, opts ...Option) *Loader {
	l := &Loader{src: src, concurrency: DefaultConcurrency}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load builds the full tree. The first failing call aborts the load and its
// error is returned unchanged; nothing is retried.
func (l *Loader) Load(ctx context.Context) (*model.Data, error) {
	start := time.Now()
	l.done.Store(0)
	l.total.Store(0)

	listed, err := l.src.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	data := &model.Data{Accounts: make([]model.Account, 0, len(listed))}
	for _, la := range listed {
		acc, err := l.loadAccount(ctx, la)
		if err != nil {
			return nil, err
		}
		data.Accounts = append(data.Accounts, acc)
	}

	a, v, i := data.Counts()
	logging.Infof("loaded %d accounts, %d vaults, %d items in %v", a, v, i, time.Since(start).Round(time.Millisecond))
	return data, nil
}

func (l *Loader) loadAccount(ctx context.Context, la op.ListedAccount) (model.Account, error) {
	scope := la.UserUUID
	details, err := l.src.GetAccount(ctx, scope)
	if err != nil {
		return model.Account{}, err
	}
	acc := model.Account{
		Name:   details.Name,
		Email:  la.Email,
		UUID:   details.ID,
		Domain: details.Domain,
	}

	listedVaults, err := l.src.ListVaults(ctx, scope)
	if err != nil {
		return model.Account{}, err
	}
	listedItems, err := l.src.ListItems(ctx, scope)
	if err != nil {
		return model.Account{}, err
	}

	byVault := make(map[string][]op.ListedItem, len(listedVaults))
	for _, it := range listedItems {
		byVault[it.Vault.ID] = append(byVault[it.Vault.ID], it)
	}

	acc.Vaults = make([]model.Vault, 0, len(listedVaults))
	for _, lv := range listedVaults {
		vd, err := l.src.GetVault(ctx, scope, lv.ID)
		if err != nil {
			return model.Account{}, err
		}
		acc.Vaults = append(acc.Vaults, model.Vault{
			UUID:  lv.ID,
			Name:  lv.Name,
			Type:  vd.Type,
			Items: make([]model.Item, len(byVault[lv.ID])),
		})
	}

	if err := l.loadItems(ctx, scope, acc.Vaults, byVault); err != nil {
		return model.Account{}, err
	}
	logging.Debugf("account %s: %d vaults, %d listed items", acc.Name, len(acc.Vaults), len(listedItems))
	return acc, nil
}

// loadItems fills the pre-sized item slots of every vault. Results are written
// by index so the order matches `op item list` regardless of completion order.
func (l *Loader) loadItems(ctx context.Context, scope string, vaults []model.Vault, byVault map[string][]op.ListedItem) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for vi := range vaults {
		listed := byVault[vaults[vi].UUID]
		l.total.Add(int64(len(listed)))
		for ii, li := range listed {
			slot := &vaults[vi].Items[ii]
			g.Go(func() error {
				item, err := l.src.GetItem(gctx, scope, li.ID)
				if err != nil {
					return err
				}
				*slot = convertItem(li, item)
				l.report()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// a cancelled load must not look complete
	return ctx.Err()
}

func (l *Loader) report() {
	done := l.done.Add(1)
	if l.progress != nil {
		l.progress(int(done), int(l.total.Load()))
	}
}

// convertItem maps op records onto the export item. Identity, timestamps,
// category, title and tags come from the listing; urls and fields from the
// full item.
func convertItem(li op.ListedItem, it op.Item) model.Item {
	out := model.Item{
		UUID:         li.ID,
		CreatedAt:    li.CreatedAt,
		UpdatedAt:    li.UpdatedAt,
		CategoryUUID: li.Category,
		Overview: model.Overview{
			Title: li.Title,
			URLs:  make([]model.URL, 0, len(it.URLs)),
			Tags:  append([]string{}, li.Tags...),
		},
		Details: model.ItemDetails{LoginFields: make([]model.LoginField, 0, len(it.Fields))},
	}
	for _, u := range it.URLs {
		href := ""
		if u.Href != nil {
			href = *u.Href
		}
		if out.Overview.URL == nil && u.Primary != nil && *u.Primary {
			out.Overview.URL = model.StringPtr(href)
		}
		out.Overview.URLs = append(out.Overview.URLs, model.URL{URL: href})
	}
	for _, f := range it.Fields {
		out.Details.LoginFields = append(out.Details.LoginFields, model.LoginField{
			Value:       f.Value,
			Name:        f.Label,
			Type:        f.Type,
			Designation: f.Purpose,
		})
	}
	return out
}
