package mastery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andrewpaige1/flipsnap-api/auth"
	"github.com/andrewpaige1/flipsnap-api/models"
	"github.com/andrewpaige1/flipsnap-api/store"
)

// Store is the persistence the aggregator reads and writes.
type Store interface {
	GetFolderByID(ctx context.Context, folderID uint) (models.Folder, error)
	ListFolders(ctx context.Context, userID uint) ([]models.Folder, error)
	ListFolderIDs(ctx context.Context) ([]uint, error)
	ListSetsByFolder(ctx context.Context, folderID uint) ([]models.FlashcardSet, error)
	UpdateFolderMastery(ctx context.Context, folderID uint, mastery *float64) error
}

type Notifier interface {
	Post(userID uint, message string)
}

// Aggregator recomputes folder mastery. Every recomputation re-reads the
// folder's full member list, so any number of triggers in any order settle
// on the same value.
type Aggregator struct {
	store   Store
	notices Notifier
}

func NewAggregator(store Store, notices Notifier) *Aggregator {
	return &Aggregator{store: store, notices: notices}
}

// FolderMastery is a folder with its freshly computed mastery.
type FolderMastery struct {
	models.Folder
	SetCount int
	Band     string
}

// Recompute derives the mastery of one folder from its current members and
// stores it.
func (a *Aggregator) Recompute(ctx context.Context, folderID uint) (FolderMastery, error) {
	folder, err := a.store.GetFolderByID(ctx, folderID)
	if err != nil {
		return FolderMastery{}, fmt.Errorf("load folder %d > %w", folderID, err)
	}
	return a.recompute(ctx, folder)
}

func (a *Aggregator) recompute(ctx context.Context, folder models.Folder) (FolderMastery, error) {
	sets, err := a.store.ListSetsByFolder(ctx, folder.ID)
	if err != nil {
		return FolderMastery{}, fmt.Errorf("load sets of folder %d > %w", folder.ID, err)
	}
	proficiencies := make([]float64, len(sets))
	for i := range sets {
		proficiencies[i] = sets[i].Proficiency
	}
	mastery := Mean(proficiencies)

	folder.Mastery = mastery
	result := FolderMastery{Folder: folder, SetCount: len(sets), Band: Band(mastery)}
	if err := a.store.UpdateFolderMastery(ctx, folder.ID, mastery); err != nil {
		return result, fmt.Errorf("store mastery of folder %d > %w", folder.ID, err)
	}
	return result, nil
}

// Folders lists the user's folders, recomputing each one on the way. A
// failed write is reported as a notice; the computed value is still returned.
func (a *Aggregator) Folders(ctx context.Context, ident auth.Identity) ([]FolderMastery, error) {
	if !ident.Valid() {
		return nil, auth.ErrNotAuthenticated
	}

	folders, err := a.store.ListFolders(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]FolderMastery, 0, len(folders))
	for _, folder := range folders {
		fm, err := a.recompute(ctx, folder)
		if err != nil {
			if fm.ID == 0 {
				return nil, err
			}
			a.reportWriteFailure(ident.UserID, folder, err)
		}
		out = append(out, fm)
	}
	return out, nil
}

// Folder recomputes and returns one folder owned by ident.
func (a *Aggregator) Folder(ctx context.Context, ident auth.Identity, folder models.Folder) (FolderMastery, error) {
	if !ident.Valid() {
		return FolderMastery{}, auth.ErrNotAuthenticated
	}
	fm, err := a.recompute(ctx, folder)
	if err != nil {
		if fm.ID == 0 {
			return FolderMastery{}, err
		}
		a.reportWriteFailure(ident.UserID, folder, err)
	}
	return fm, nil
}

// RecomputeAll recomputes every folder and returns how many were updated.
func (a *Aggregator) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := a.store.ListFolderIDs(ctx)
	if err != nil {
		return 0, err
	}

	var errs []error
	updated := 0
	for _, id := range ids {
		if _, err := a.Recompute(ctx, id); err != nil {
			errs = append(errs, err)
			continue
		}
		updated++
	}
	return updated, errors.Join(errs...)
}

// Run recomputes the folders named by each change until the channel closes
// or ctx is done. Mastery writes are ignored so recomputation never feeds
// itself.
func (a *Aggregator) Run(ctx context.Context, changes <-chan store.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			a.handle(ctx, change)
		}
	}
}

func (a *Aggregator) handle(ctx context.Context, change store.Change) {
	if change.Kind == store.KindFolderMastery {
		return
	}
	for _, folderID := range change.FolderIDs {
		_, err := a.Recompute(ctx, folderID)
		if errors.Is(err, store.ErrNotFound) {
			// The folder is gone; nothing to keep consistent.
			continue
		}
		if err != nil {
			slog.Default().Warn("mastery recompute failed",
				slog.Uint64("folderID", uint64(folderID)),
				slog.String("trigger", string(change.Kind)),
				slog.Any("error", err),
			)
			if change.UserID != 0 {
				a.notices.Post(change.UserID, "A folder's mastery could not be updated. It will refresh on the next change.")
			}
		}
	}
}

func (a *Aggregator) reportWriteFailure(userID uint, folder models.Folder, err error) {
	slog.Default().Warn("mastery write failed",
		slog.Uint64("folderID", uint64(folder.ID)),
		slog.Any("error", err),
	)
	a.notices.Post(userID, fmt.Sprintf("Mastery for %q could not be saved and may be out of date.", folder.Name))
}
