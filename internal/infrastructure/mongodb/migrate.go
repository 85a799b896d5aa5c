package mongodb

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	mongomigrate "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// RunMigrations applies the JSON command migrations in dir (unique email
// index, sort indexes) to dbName.
func RunMigrations(client *mongo.Client, dbName, dir string, logger *logrus.Logger) error {
	driver, err := mongomigrate.WithInstance(client, &mongomigrate.Config{DatabaseName: dbName})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, dbName, driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
