package configs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectDB() *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(EnvMongoURI()))
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}

	// Ping to fail fast on bad credentials or an unreachable server
	if err := client.Ping(ctx, nil); err != nil {
		logrus.WithError(err).Fatal("MongoDB ping failed")
	}

	logrus.Info("connected to MongoDB")
	return client
}

func GetDatabase(client *mongo.Client) *mongo.Database {
	return client.Database(EnvDBName())
}
