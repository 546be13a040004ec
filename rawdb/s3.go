package rawdb

import (
	"bytes"
	"net"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/everFinance/names/schema"
)

const (
	S3Type = "s3"
)

type S3DB struct {
	downloader   s3manager.Downloader
	uploader     s3manager.Uploader
	s3Api        s3iface.S3API
	bucketPrefix string
}

func NewS3DB(accKey, secretKey, region, bktPrefix, endpoint string) (*S3DB, error) {
	mySession := session.Must(session.NewSession())
	cred := credentials.NewStaticCredentials(accKey, secretKey, "")
	cfgs := aws.NewConfig().WithRegion(region).WithCredentials(cred)
	if endpoint != "" {
		cfgs.WithEndpoint(endpoint)
		// if endpoint is an IP address, use path-style addressing.
		if u, err := url.Parse(endpoint); err == nil {
			if net.ParseIP(u.Hostname()) != nil {
				cfgs.S3ForcePathStyle = aws.Bool(true)
			}
		}
	}
	s3Api := s3.New(mySession, cfgs)
	if err := createS3Bucket(s3Api, bktPrefix); err != nil {
		return nil, err
	}

	log.Info("run with s3 success", "region", region, "prefix", bktPrefix)
	return &S3DB{
		downloader:   s3manager.Downloader{S3: s3Api},
		uploader:     s3manager.Uploader{S3: s3Api},
		s3Api:        s3Api,
		bucketPrefix: bktPrefix,
	}, nil
}

func (s *S3DB) Type() string {
	return S3Type
}

func (s *S3DB) Put(bucket, key string, value []byte) (err error) {
	_, err = s.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(getS3Bucket(s.bucketPrefix, bucket)),
		Key:    aws.String(key),
		Body:   bytes.NewReader(value),
	})
	return
}

func (s *S3DB) Get(bucket, key string) (data []byte, err error) {
	buf := aws.NewWriteAtBuffer([]byte{})
	n, err := s.downloader.Download(buf, &s3.GetObjectInput{
		Bucket: aws.String(getS3Bucket(s.bucketPrefix, bucket)),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, schema.ErrNotExist
		}
		return nil, err
	}
	if n == 0 {
		return nil, schema.ErrNotExist
	}
	return buf.Bytes(), nil
}

func (s *S3DB) GetAllKey(bucket string) (keys []string, err error) {
	keys = make([]string, 0)
	err = s.s3Api.ListObjectsV2Pages(&s3.ListObjectsV2Input{Bucket: aws.String(getS3Bucket(s.bucketPrefix, bucket))},
		func(page *s3.ListObjectsV2Output, lastPage bool) bool {
			for _, item := range page.Contents {
				keys = append(keys, *item.Key)
			}
			return true
		})
	return
}

func (s *S3DB) Delete(bucket, key string) (err error) {
	_, err = s.s3Api.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(getS3Bucket(s.bucketPrefix, bucket)),
		Key:    aws.String(key),
	})
	return
}

// Batch has no native transaction on s3; failed batches are undone op by op.
func (s *S3DB) Batch(ops []Op) (err error) {
	return applySequential(s, ops)
}

func (s *S3DB) Exist(bucket, key string) bool {
	_, err := s.s3Api.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(getS3Bucket(s.bucketPrefix, bucket)),
		Key:    aws.String(key),
	})
	return err == nil
}

func (s *S3DB) Close() (err error) {
	return
}

func createS3Bucket(svc s3iface.S3API, prefix string) error {
	for _, bucketName := range schema.AllBuckets() {
		s3Bkt := getS3Bucket(prefix, bucketName)
		_, err := svc.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(s3Bkt)})
		if err != nil && !strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return err
		}
	}
	return nil
}

// s3 bucket name only accept lower case
func getS3Bucket(prefix, bktName string) string {
	return strings.ToLower(prefix + "-" + bktName)
}
