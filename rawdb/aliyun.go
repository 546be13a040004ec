package rawdb

import (
	"bytes"
	"io"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/everFinance/names/schema"
)

// refer https://help.aliyun.com/document_detail/32157.html
const (
	ossErrorNoSuchKey = "NoSuchKey"
	AliyunType        = "aliyun"
)

type AliyunDB struct {
	bucketPrefix string
	client       *oss.Client
}

func NewAliyunDB(endpoint, accKey, accessKeySecret, bktPrefix string) (*AliyunDB, error) {
	client, err := oss.New(endpoint, accKey, accessKeySecret)
	if err != nil {
		return nil, err
	}
	if err = createAliyunBucket(client, bktPrefix); err != nil {
		return nil, err
	}

	log.Info("run with aliyun oss success", "endpoint", endpoint, "prefix", bktPrefix)
	return &AliyunDB{
		bucketPrefix: bktPrefix,
		client:       client,
	}, nil
}

func (a *AliyunDB) Type() string {
	return AliyunType
}

func (a *AliyunDB) Put(bucket, key string, value []byte) (err error) {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return err
	}
	return bkt.PutObject(key, bytes.NewReader(value))
}

func (a *AliyunDB) Get(bucket, key string) (data []byte, err error) {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return
	}

	body, err := bkt.GetObject(key)
	if err != nil {
		return nil, handleOSSErr(err)
	}
	defer body.Close()

	return io.ReadAll(body)
}

func (a *AliyunDB) GetAllKey(bucket string) (keys []string, err error) {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return
	}

	keys = make([]string, 0)
	continueToken := ""
	for {
		lsRes, err := bkt.ListObjectsV2(oss.ContinuationToken(continueToken))
		if err != nil {
			return nil, err
		}
		for _, object := range lsRes.Objects {
			keys = append(keys, object.Key)
		}
		if !lsRes.IsTruncated {
			break
		}
		continueToken = lsRes.NextContinuationToken
	}
	return keys, nil
}

func (a *AliyunDB) Delete(bucket, key string) (err error) {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return
	}
	return bkt.DeleteObject(key)
}

// Batch has no native transaction on oss; failed batches are undone op by op.
func (a *AliyunDB) Batch(ops []Op) (err error) {
	return applySequential(a, ops)
}

func (a *AliyunDB) Exist(bucket, key string) bool {
	bkt, err := a.client.Bucket(getS3Bucket(a.bucketPrefix, bucket))
	if err != nil {
		return false
	}
	exist, _ := bkt.IsObjectExist(key)
	return exist
}

func (a *AliyunDB) Close() (err error) {
	return
}

func createAliyunBucket(svc *oss.Client, prefix string) error {
	ownBuckets, err := getBucketWithPrefix(svc, prefix)
	if err != nil {
		return err
	}

	for _, bucketName := range schema.AllBuckets() {
		ossBkt := getS3Bucket(prefix, bucketName)
		if !ownBuckets[ossBkt] {
			if err := svc.CreateBucket(ossBkt); err != nil {
				return err
			}
		}
	}
	return nil
}

func getBucketWithPrefix(svc *oss.Client, prefix string) (map[string]bool, error) {
	res := make(map[string]bool)

	lsRes, err := svc.ListBuckets(oss.Prefix(prefix))
	if err != nil {
		return nil, err
	}
	for _, bucket := range lsRes.Buckets {
		res[bucket.Name] = true
	}
	return res, nil
}

// handleOSSErr converts missing object errors to schema.ErrNotExist
func handleOSSErr(ossErr error) error {
	if svcErr, ok := ossErr.(oss.ServiceError); ok && svcErr.Code == ossErrorNoSuchKey {
		return schema.ErrNotExist
	}
	return ossErr
}
