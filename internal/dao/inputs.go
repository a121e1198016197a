package dao

import (
	"context"
	"marginflow/internal/consts"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// 输入快照存储：按设备维度保存最近一次录入的原始字符串键值对。
// 只做原样回显，不做任何规整和校验

type InputsStore interface {
	// 保存快照，整体覆盖
	InputsSave(ctx context.Context, deviceId string, values map[string]string) error
	// 读取快照，不存在时返回空map
	InputsLoad(ctx context.Context, deviceId string) (map[string]string, error)
	// 删除快照
	InputsDelete(ctx context.Context, deviceId string) error
}

var _ InputsStore = (*RedisInputsDao)(nil)

type RedisInputsDao struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisInputsDao(rdb *redis.Client, ttl time.Duration) *RedisInputsDao {
	if ttl <= 0 {
		ttl = consts.RedisExrDefault
	}
	return &RedisInputsDao{rdb: rdb, ttl: ttl}
}

func (d *RedisInputsDao) key(deviceId string) string {
	return consts.CalcInputsPrefix + deviceId
}

func (d *RedisInputsDao) InputsSave(ctx context.Context, deviceId string, values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return d.rdb.Set(ctx, d.key(deviceId), data, d.ttl).Err()
}

func (d *RedisInputsDao) InputsLoad(ctx context.Context, deviceId string) (map[string]string, error) {
	data, err := d.rdb.Get(ctx, d.key(deviceId)).Bytes()
	if err == redis.Nil {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (d *RedisInputsDao) InputsDelete(ctx context.Context, deviceId string) error {
	return d.rdb.Del(ctx, d.key(deviceId)).Err()
}

var _ InputsStore = (*MemoryInputsDao)(nil)

// MemoryInputsDao 进程内存储，开发环境和测试用
type MemoryInputsDao struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryInputsDao() *MemoryInputsDao {
	return &MemoryInputsDao{data: make(map[string]map[string]string)}
}

func (d *MemoryInputsDao) InputsSave(_ context.Context, deviceId string, values map[string]string) error {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	d.mu.Lock()
	d.data[deviceId] = cp
	d.mu.Unlock()
	return nil
}

func (d *MemoryInputsDao) InputsLoad(_ context.Context, deviceId string) (map[string]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	values, ok := d.data[deviceId]
	if !ok {
		return map[string]string{}, nil
	}
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return cp, nil
}

func (d *MemoryInputsDao) InputsDelete(_ context.Context, deviceId string) error {
	d.mu.Lock()
	delete(d.data, deviceId)
	d.mu.Unlock()
	return nil
}
