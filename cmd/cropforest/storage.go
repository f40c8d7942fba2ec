package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/codec"
	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/dataset/csv"
	"github.com/pbanos/cropforest/dataset/sqlset"
	"github.com/pbanos/cropforest/dataset/sqlset/pgadapter"
	"github.com/pbanos/cropforest/dataset/sqlset/sqlite3adapter"
	"github.com/pbanos/cropforest/store/redisstore"
	"go.uber.org/zap"
	"gopkg.in/redis.v5"
)

// redisKeyPrefix is the prefix of the redis keys forests are saved under.
const redisKeyPrefix = "cropforest"

const datasetLocationHelp = "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL"

const forestLocationHelp = "path to a JSON (.json) or BSON (.bson) file, or a redis URL like redis://host:port/db/name"

func isPostgreSQL(location string) bool {
	return strings.HasPrefix(location, "postgresql://") || strings.HasPrefix(location, "postgres://")
}

func sqlAdapter(location string) (sqlset.Adapter, bool, error) {
	if isPostgreSQL(location) {
		a, err := pgadapter.New(location)
		return a, true, err
	}
	if strings.HasSuffix(location, ".db") {
		a, err := sqlite3adapter.New(location)
		return a, true, err
	}
	return nil, false, nil
}

/*
readDataset reads the dataset at the given location: a SQLite3 file, a
PostgreSQL DB, or a CSV file, STDIN if location is empty.
*/
func readDataset(ctx context.Context, location string, logger *zap.Logger) (dataset.Dataset, error) {
	a, ok, err := sqlAdapter(location)
	if err != nil {
		return nil, err
	}
	if ok {
		defer a.Close()
		logger.Debug("reading dataset from DB", zap.String("location", location))
		return sqlset.Read(ctx, a)
	}
	if location == "" {
		logger.Debug("reading CSV dataset from STDIN")
	} else {
		logger.Debug("reading CSV dataset", zap.String("location", location))
	}
	return csv.ReadDatasetFromFilePath(location)
}

/*
writeDataset writes the dataset to the given location: a SQLite3 file, a
PostgreSQL DB, or a CSV file, STDOUT if location is empty.
*/
func writeDataset(ctx context.Context, location string, ds dataset.Dataset, logger *zap.Logger) error {
	a, ok, err := sqlAdapter(location)
	if err != nil {
		return err
	}
	if ok {
		defer a.Close()
		logger.Debug("writing dataset to DB", zap.String("location", location), zap.Int("samples", len(ds)))
		return sqlset.Write(ctx, a, ds)
	}
	f := os.Stdout
	if location != "" {
		f, err = os.Create(location)
		if err != nil {
			return fmt.Errorf("creating dataset file: %v", err)
		}
		defer f.Close()
	}
	logger.Debug("writing CSV dataset", zap.String("location", location), zap.Int("samples", len(ds)))
	return csv.WriteDataset(f, ds)
}

// redisLocation is a forest location in a redis DB.
type redisLocation struct {
	options *redis.Options
	name    string
}

func parseRedisLocation(location string) (*redisLocation, error) {
	opts, parts, err := parseRedisURL(location)
	if err != nil {
		return nil, err
	}
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("redis URL %s must have a path like /db/name", location)
	}
	return &redisLocation{options: opts, name: parts[1]}, nil
}

/*
parseRedisURL parses a redis://[:password@]host:port/db[/...] URL into
client options and the segments of its path, the first of them being the
DB number.
*/
func parseRedisURL(location string) (*redis.Options, []string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing redis URL: %v", err)
	}
	if u.Scheme != "redis" {
		return nil, nil, fmt.Errorf("%s is not a redis URL", location)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	db, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("parsing redis DB number %q: %v", parts[0], err)
	}
	opts := &redis.Options{Addr: u.Host, DB: db}
	if u.User != nil {
		opts.Password, _ = u.User.Password()
	}
	return opts, parts, nil
}

// forestStore returns a Store over the redis DB at location and its client.
func forestStore(location string) (redisstore.Store, *redis.Client, error) {
	opts, parts, err := parseRedisURL(location)
	if err != nil {
		return nil, nil, err
	}
	if len(parts) != 1 {
		return nil, nil, fmt.Errorf("redis URL %s must have a path like /db", location)
	}
	rc := redis.NewClient(opts)
	return redisstore.New(rc, redisKeyPrefix, codec.NewJSON()), rc, nil
}

func fileCodec(location string) (codec.EncodeDecoder, error) {
	switch path.Ext(location) {
	case ".json":
		return codec.NewJSON(), nil
	case ".bson":
		return codec.NewBSON(), nil
	}
	return nil, fmt.Errorf("unknown forest file extension in %s, use .json or .bson", location)
}

// loadForest loads the trained forest at the given location.
func loadForest(ctx context.Context, location string, logger *zap.Logger) (*cropforest.Forest, error) {
	opts := []cropforest.Option{cropforest.WithLogger(logger)}
	if strings.HasPrefix(location, "redis://") {
		rl, err := parseRedisLocation(location)
		if err != nil {
			return nil, err
		}
		rc := redis.NewClient(rl.options)
		defer rc.Close()
		logger.Debug("loading forest from redis", zap.String("addr", rl.options.Addr), zap.String("name", rl.name))
		return redisstore.New(rc, redisKeyPrefix, codec.NewJSON()).Load(ctx, rl.name, opts...)
	}
	encdec, err := fileCodec(location)
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("reading forest from %s: %v", location, err)
	}
	f, err := encdec.Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("decoding forest from %s: %w", location, err)
	}
	return f, nil
}

/*
saveForest saves the trained forest to the given location, or writes it
as JSON to STDOUT if location is empty.
*/
func saveForest(ctx context.Context, location string, f *cropforest.Forest, logger *zap.Logger) error {
	if strings.HasPrefix(location, "redis://") {
		rl, err := parseRedisLocation(location)
		if err != nil {
			return err
		}
		rc := redis.NewClient(rl.options)
		defer rc.Close()
		logger.Debug("saving forest to redis", zap.String("addr", rl.options.Addr), zap.String("name", rl.name))
		return redisstore.New(rc, redisKeyPrefix, codec.NewJSON()).Save(ctx, rl.name, f)
	}
	var encdec codec.EncodeDecoder = codec.NewJSON()
	if location != "" {
		var err error
		if encdec, err = fileCodec(location); err != nil {
			return err
		}
	}
	data, err := encdec.Encode(f)
	if err != nil {
		return err
	}
	if location == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	logger.Debug("saving forest", zap.String("location", location))
	return ioutil.WriteFile(location, data, 0644)
}
