package archive

import (
	"encoding/json"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const bucketMatches = "matches"

const DEFAULT_CACHE_SIZE = 128

var ErrMatchNotFound = errors.New("对局记录不存在")

// Store 把结束的对局写入 bbolt，按 ID 读取时经过 ARC 缓存
type Store struct {
	db    *bolt.DB
	cache *lru.ARCCache
}

func Open(path string, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DEFAULT_CACHE_SIZE
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("打开存档数据库失败: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketMatches))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("创建存档桶失败: %w", err)
	}

	c, err := lru.NewARC(cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("创建存档缓存失败: %w", err)
	}

	return &Store{db: db, cache: c}, nil
}

func (st *Store) Close() error {
	if err := st.db.Close(); err != nil {
		return fmt.Errorf("关闭存档数据库失败: %w", err)
	}
	return nil
}

func (st *Store) Record(rec MatchRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("对局记录缺少 ID")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化对局记录失败: %w", err)
	}

	if err := st.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketMatches)).Put([]byte(rec.ID), data)
	}); err != nil {
		return fmt.Errorf("写入对局记录失败: %w", err)
	}

	st.cache.Add(rec.ID, rec)

	zap.L().Debug(
		"对局记录已存档",
		zap.String("match_id", rec.ID),
		zap.String("lobby_code", rec.LobbyCode),
	)

	return nil
}

func (st *Store) Get(id string) (MatchRecord, error) {
	if v, ok := st.cache.Get(id); ok {
		return v.(MatchRecord), nil
	}

	var rec MatchRecord

	if err := st.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketMatches)).Get([]byte(id))
		if data == nil {
			return ErrMatchNotFound
		}
		return json.Unmarshal(data, &rec)
	}); err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return MatchRecord{}, err
		}
		return MatchRecord{}, fmt.Errorf("读取对局记录失败: %w", err)
	}

	st.cache.Add(id, rec)

	return rec, nil
}

// List 返回最近的 limit 条记录，新的在前
func (st *Store) List(limit int) ([]MatchRecord, error) {
	list := make([]MatchRecord, 0)

	if err := st.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(bucketMatches)).Cursor()

		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			if limit > 0 && len(list) >= limit {
				break
			}

			var rec MatchRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("解析对局记录 %s 失败: %w", k, err)
			}
			list = append(list, rec)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("遍历对局记录失败: %w", err)
	}

	return list, nil
}
