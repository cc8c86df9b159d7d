package evc

import (
	"os"

	json "github.com/goccy/go-json"

	"github.com/Na1awut/NDLP/internal/evc/interfaces"
	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/providers"
)

type FileManager struct {
	snapshotter interfaces.Snapshotter
	compressor  interfaces.CompressorInterface
	logger      providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, snapshotter interfaces.Snapshotter, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor:  compressor,
		snapshotter: snapshotter,
		logger:      logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	storage := f.snapshotter.GetSnapshot()

	jsonData, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the full store from a snapshot. A missing file is
// a clean first boot, not an error.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var storage models.Storage
	if err := json.Unmarshal(decompressedData, &storage); err != nil {
		f.logger.Warnf(providers.TypeApp, "Snapshot file is unreadable, starting empty: %s", err)
		return err
	}
	if storage.Identities == nil {
		storage.Identities = make(map[models.IdentityID]*models.CanonicalIdentity)
	}
	if storage.Bindings == nil {
		storage.Bindings = make(map[string]models.IdentityID)
	}
	if storage.States == nil {
		storage.States = make(map[models.IdentityID]*models.EmotionalState)
	}
	if storage.Alerts == nil {
		storage.Alerts = make(map[models.IdentityID]*models.AlertRecord)
	}
	if storage.Tokens == nil {
		storage.Tokens = make(map[string]*models.LinkToken)
	}
	f.snapshotter.PutSnapshot(&storage)

	return nil
}
