package names

import (
	"os"
	"path"

	"github.com/everFinance/names/schema"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	sqliteName = "names.sqlite"
)

type Wdb struct {
	Db *gorm.DB
}

func NewMysqlDb(dsn string) *Wdb {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect mysql db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbDir string) *Wdb {
	if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
		panic(err)
	}
	db, err := gorm.Open(sqlite.Open(path.Join(dbDir, sqliteName)), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Silent),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite db success", "dir", dbDir)
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(&schema.PurchaseLog{}, &schema.EscrowEntry{}, &schema.SuffixLog{})
}

// InsertPurchase stores a purchase and its escrow movements in one db transaction.
func (w *Wdb) InsertPurchase(pl schema.PurchaseLog, entries []schema.EscrowEntry) error {
	tx := w.Db.Begin()
	if err := tx.Create(&pl).Error; err != nil {
		tx.Rollback()
		return err
	}
	if len(entries) > 0 {
		if err := tx.Create(&entries).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

func (w *Wdb) InsertEscrowEntries(entries []schema.EscrowEntry) error {
	return w.Db.Create(&entries).Error
}

func (w *Wdb) InsertSuffixLog(sl schema.SuffixLog) error {
	return w.Db.Create(&sl).Error
}

// GetPurchasesByCreator pages backwards by id; cursor 0 starts from the newest row.
func (w *Wdb) GetPurchasesByCreator(creator string, cursor uint, num int) ([]schema.PurchaseLog, error) {
	res := make([]schema.PurchaseLog, 0, num)
	query := w.Db.Where("creator = ?", creator)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id desc").Limit(num).Find(&res).Error
	return res, err
}

func (w *Wdb) GetEscrowEntries(owner string, cursor uint, num int) ([]schema.EscrowEntry, error) {
	res := make([]schema.EscrowEntry, 0, num)
	query := w.Db.Where("owner = ?", owner)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id desc").Limit(num).Find(&res).Error
	return res, err
}

func (w *Wdb) GetUnexportedPurchases(num int) ([]schema.PurchaseLog, error) {
	res := make([]schema.PurchaseLog, 0, num)
	err := w.Db.Where("exported = ?", false).Order("id asc").Limit(num).Find(&res).Error
	return res, err
}

func (w *Wdb) GetUnexportedEscrowEntries(num int) ([]schema.EscrowEntry, error) {
	res := make([]schema.EscrowEntry, 0, num)
	err := w.Db.Where("exported = ?", false).Order("id asc").Limit(num).Find(&res).Error
	return res, err
}

func (w *Wdb) GetUnexportedSuffixLogs(num int) ([]schema.SuffixLog, error) {
	res := make([]schema.SuffixLog, 0, num)
	err := w.Db.Where("exported = ?", false).Order("id asc").Limit(num).Find(&res).Error
	return res, err
}

// MarkExported flags rows of model (e.g. &schema.PurchaseLog{}) as published.
func (w *Wdb) MarkExported(model interface{}, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return w.Db.Model(model).Where("id IN ?", ids).Update("exported", true).Error
}

func (w *Wdb) CountUnexported(model interface{}) (count int64, err error) {
	err = w.Db.Model(model).Where("exported = ?", false).Count(&count).Error
	return
}

func (w *Wdb) Close() {
	sqlDB, err := w.Db.DB()
	if err == nil {
		sqlDB.Close()
	}
}
